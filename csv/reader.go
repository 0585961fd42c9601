package csv

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	quote = '"'
	nl    = '\n'
	cr    = '\r'
	space = ' '
)

var (
	ErrSeparator    = errors.New("unsupported separator")
	errUnterminated = errors.New("unterminated")
)

func ParseSeparator(str string) (byte, error) {
	switch str {
	case "semi", "semicolon", ";":
		return ';', nil
	case "comma", ",", "":
		return ',', nil
	case "tab", "\t":
		return '\t', nil
	case "colon", ":":
		return ':', nil
	case "pipe", "|":
		return '|', nil
	default:
		return 0, fmt.Errorf("%q: %w", str, ErrSeparator)
	}
}

type Reader struct {
	inner         *bufio.Reader
	Comma         byte
	FieldsPerLine int
	TrimSpace     bool

	line  int
	atEOF bool
}

func NewReader(r io.Reader) *Reader {
	rs := Reader{
		inner: bufio.NewReader(r),
		Comma: ',',
	}
	return &rs
}

func (r *Reader) Done() bool {
	return r.atEOF
}

func (r *Reader) Line() int {
	return r.line
}

func (r *Reader) ReadAll() ([][]string, error) {
	var all [][]string
	for {
		rs, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		all = append(all, rs)
	}
	return all, nil
}

func (r *Reader) Read() ([]string, error) {
	if r.Done() {
		return nil, io.EOF
	}
	line, err := r.inner.ReadBytes(nl)
	if len(line) == 0 && errors.Is(err, io.EOF) {
		r.atEOF = true
		return nil, err
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	r.line++

	var res []string
	for i := 0; ; {
		if i >= len(line) {
			res = append(res, "")
			break
		}
		var (
			field []byte
			size  int
			err   error
			done  bool
		)
		switch line[i] {
		case cr, nl:
			if line[i] == cr && (i+1 >= len(line) || line[i+1] != nl) {
				return nil, r.errorf("carriage return only allowed before newline")
			}
			res = append(res, "")
			done = true
		case quote:
			for {
				field, size, err = r.readQuotedField(line[i:])
				if !errors.Is(err, errUnterminated) {
					break
				}
				next, err1 := r.inner.ReadBytes(nl)
				if len(next) == 0 {
					return nil, r.errorf("unterminated quoted field")
				}
				if err1 != nil && !errors.Is(err1, io.EOF) {
					return nil, err1
				}
				line = append(line, next...)
			}
		default:
			field, size, err = r.readDefaultField(line[i:])
		}
		if done {
			break
		}
		if err != nil {
			return nil, err
		}
		i += size
		res = append(res, r.field(field))
		if i >= len(line) {
			break
		}
		if line[i] == r.Comma {
			i++
			continue
		}
		if line[i] == nl || (line[i] == cr && i+1 < len(line) && line[i+1] == nl) {
			break
		}
		return nil, r.errorf("unexpected character after field")
	}
	if r.FieldsPerLine > 0 && len(res) != r.FieldsPerLine {
		return nil, r.errorf("invalid number of fields (want %d, got %d)", r.FieldsPerLine, len(res))
	}
	return res, nil
}

func (r *Reader) field(b []byte) string {
	if r.TrimSpace {
		b = bytes.TrimSpace(b)
	}
	return string(b)
}

func (r *Reader) errorf(pattern string, args ...any) error {
	return fmt.Errorf("line %d: %s", r.line, fmt.Sprintf(pattern, args...))
}

func (r *Reader) readQuotedField(line []byte) ([]byte, int, error) {
	var (
		field  []byte
		offset = 1
	)
	for offset < len(line) {
		if line[offset] == quote {
			if offset+1 < len(line) && line[offset+1] == quote {
				field = append(field, quote)
				offset += 2
				continue
			}
			return field, offset + 1, nil
		}
		field = append(field, line[offset])
		offset++
	}
	return nil, 0, errUnterminated
}

func (r *Reader) readDefaultField(line []byte) ([]byte, int, error) {
	var offset int
	for offset < len(line) {
		switch line[offset] {
		case quote:
			return nil, 0, r.errorf("unexpected quote")
		case r.Comma, cr, nl:
			return line[:offset], offset, nil
		default:
			offset++
		}
	}
	return line[:offset], offset, nil
}
