package readfiles

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/ibtargets/types"
	"github.com/notargets/ibtargets/utils"
)

func openFile(path string) (file *os.File, err error) {
	if file, err = os.Open(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.NewFileError(types.ErrFileNotFound, path, 0, "")
		}
		return nil, err
	}
	return
}

func parseFloat(token, path string, line int) (val float64, err error) {
	if val, err = strconv.ParseFloat(token, 64); err != nil || !utils.IsFinite(val) {
		return 0, types.NewFileError(types.ErrMalformedInput, path, line, "unable to parse [%s] as a number", token)
	}
	return
}

// getLine returns the next line without its terminator. ok is false once the
// stream is exhausted; a final line without a newline is still returned.
func getLine(reader *bufio.Reader, path string) (line string, ok bool, err error) {
	line, err = reader.ReadString('\n')
	switch {
	case err == io.EOF:
		err = nil
		if len(line) == 0 {
			return
		}
	case err != nil:
		return "", false, types.NewFileError(types.ErrMalformedInput, path, 0, "read failed: %v", err)
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

// readNumbers collects every whitespace separated numeric token in the stream.
func readNumbers(reader io.Reader, path string) (vals []float64, err error) {
	var (
		br   = bufio.NewReader(reader)
		text string
		ok   bool
	)
	for line := 1; ; line++ {
		if text, ok, err = getLine(br, path); err != nil || !ok {
			return
		}
		for _, token := range strings.Fields(text) {
			var val float64
			if val, err = parseFloat(token, path, line); err != nil {
				return
			}
			vals = append(vals, val)
		}
	}
}

// readRows parses each non blank line into at least width numbers, extra
// tokens on a line are ignored.
func readRows(reader io.Reader, path string, width int) (rows [][]float64, err error) {
	var (
		br   = bufio.NewReader(reader)
		text string
		ok   bool
	)
	for line := 1; ; line++ {
		if text, ok, err = getLine(br, path); err != nil {
			return nil, err
		}
		if !ok {
			return
		}
		tokens := strings.Fields(text)
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) < width {
			return nil, types.NewFileError(types.ErrMalformedInput, path, line,
				"read fewer than required values, read %d, need %d", len(tokens), width)
		}
		row := make([]float64, width)
		for i := 0; i < width; i++ {
			if row[i], err = parseFloat(tokens[i], path, line); err != nil {
				return nil, err
			}
		}
		rows = append(rows, row)
	}
}

func countFromFloat(val float64, path string) (N int, err error) {
	if val < 0 || val != float64(int(val)) {
		return 0, types.NewFileError(types.ErrMalformedInput, path, 0, "point count must be a non-negative integer, read %v", val)
	}
	return int(val), nil
}
