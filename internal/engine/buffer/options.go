package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the buffer's line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithLF configures the buffer to use Unix line endings (\n).
func WithLF() Option {
	return WithLineEnding(LineEndingLF)
}

// WithCRLF configures the buffer to use Windows line endings (\r\n).
func WithCRLF() Option {
	return WithLineEnding(LineEndingCRLF)
}

// WithHistoryLimit caps the number of undo entries. Zero or less keeps the
// default.
func WithHistoryLimit(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.history.max = n
		}
	}
}

// DetectLineEnding returns a LineEnding based on the most common line ending in the text.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount int

	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		if i > 0 && text[i-1] == '\r' {
			crlfCount++
		} else {
			lfCount++
		}
	}

	if crlfCount > 0 && crlfCount >= lfCount {
		return LineEndingCRLF
	}
	return LineEndingLF
}

// WithDetectedLineEnding sets the buffer's line ending style based on content.
func WithDetectedLineEnding(text string) Option {
	return WithLineEnding(DetectLineEnding(text))
}
