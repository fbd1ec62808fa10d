package stats

import (
	"bytes"
	"errors"
	"io"
	"os"
	"unicode/utf8"
)

const (
	textSampleSize     = 1024
	asciiRatioRequired = 0.9
	lineCountChunkSize = 32 * 1024
)

var textExtensions = map[string]struct{}{
	"txt": {}, "py": {}, "js": {}, "java": {}, "c": {}, "cpp": {}, "h": {}, "hpp": {},
	"html": {}, "css": {}, "md": {}, "json": {}, "xml": {}, "yaml": {}, "yml": {},
	"ini": {}, "cfg": {}, "conf": {}, "sh": {}, "bat": {}, "ps1": {}, "go": {},
	"rb": {}, "rs": {}, "ts": {}, "php": {}, "swift": {},
}

// IsTextFile classifies a file as text. Known source and text extensions
// short-circuit; otherwise the first 1KB is decoded as UTF-8, invalid bytes
// are skipped, and the file is text when more than 90% of the decoded
// characters are ASCII. An empty file is text.
//
// #nosec G304
func IsTextFile(path string, extension string) (bool, error) {
	if _, known := textExtensions[extension]; known {
		return true, nil
	}
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return false, openError
	}
	defer fileHandle.Close()

	sample := make([]byte, textSampleSize)
	bytesRead, readError := io.ReadFull(fileHandle, sample)
	if readError != nil && !errors.Is(readError, io.EOF) && !errors.Is(readError, io.ErrUnexpectedEOF) {
		return false, readError
	}
	return isMostlyASCII(sample[:bytesRead]), nil
}

func isMostlyASCII(sample []byte) bool {
	if len(sample) == 0 {
		return true
	}
	var decodedCharacters, asciiCharacters int
	for len(sample) > 0 {
		decodedRune, runeWidth := utf8.DecodeRune(sample)
		sample = sample[runeWidth:]
		if decodedRune == utf8.RuneError && runeWidth <= 1 {
			continue
		}
		decodedCharacters++
		if decodedRune < utf8.RuneSelf {
			asciiCharacters++
		}
	}
	if decodedCharacters == 0 {
		return false
	}
	return float64(asciiCharacters)/float64(decodedCharacters) > asciiRatioRequired
}

// CountLines returns the number of lines in the file, counting a final line
// that lacks a trailing newline.
//
// #nosec G304
func CountLines(path string) (int, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return 0, openError
	}
	defer fileHandle.Close()
	return countLines(fileHandle)
}

func countLines(reader io.Reader) (int, error) {
	buffer := make([]byte, lineCountChunkSize)
	lineCount := 0
	var lastByte byte
	sawData := false
	for {
		bytesRead, readError := reader.Read(buffer)
		if bytesRead > 0 {
			sawData = true
			lineCount += bytes.Count(buffer[:bytesRead], []byte{'\n'})
			lastByte = buffer[bytesRead-1]
		}
		if errors.Is(readError, io.EOF) {
			break
		}
		if readError != nil {
			return 0, readError
		}
	}
	if sawData && lastByte != '\n' {
		lineCount++
	}
	return lineCount, nil
}
