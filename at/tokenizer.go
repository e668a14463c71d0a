package at

import (
	"bufio"
	"bytes"
)

// Splitter tokenizes the multi-line AT+RX reply. It uses the signature of
// bufio.SplitFunc so it can be directly used with bufio.Scanner.
//
// Unlike bufio.ScanLines it keeps the line terminator in the token: the
// line parsers verify the CRLF themselves.
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining data is returned as the final token.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter
