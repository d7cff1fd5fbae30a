package record

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/key"
)

// Record is one body entry: the tapped event and the milliseconds since the
// previous entry
type Record struct {
	Elapsed int32
	Event   event.Event
}

// Writer encodes records in one Mode. Not safe for concurrent use.
type Writer struct {
	w     *bufio.Writer
	mode  Mode
	codec NativeCodec
}

// NewWriter writes the header for mode and returns a Writer for the body.
// codec is only consulted in ModeSys; nil stores portable codes.
func NewWriter(w io.Writer, mode Mode, codec NativeCodec) (*Writer, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if codec == nil {
		codec = identityCodec{}
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(mode.Header())
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrWrite, err)
	}
	return &Writer{w: bw, mode: mode, codec: codec}, nil
}

// Write encodes one record followed by the raw newline byte
func (w *Writer) Write(rec Record) error {
	tag := event.TagOf(rec.Event.Kind)
	if tag == "" {
		return fmt.Errorf("%w: kind %v", ErrFormat, rec.Event.Kind)
	}
	var err error
	if w.mode == ModeBinary {
		err = w.writeBinary(tag, rec)
	} else {
		err = w.writeText(tag, rec)
	}
	if err == nil {
		err = w.w.WriteByte('\n')
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, tag, err)
	}
	return nil
}

// Flush pushes buffered records to the underlying writer
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %v", ErrWrite, err)
	}
	return nil
}

func (w *Writer) writeText(tag string, rec Record) error {
	var err error
	switch p := rec.Event.Payload.(type) {
	case event.ButtonEvent:
		_, err = fmt.Fprintf(w.w, "%s %d %c %d %d %d", tag, rec.Elapsed, p.Button, p.Status, p.X, p.Y)
	case event.MotionEvent:
		_, err = fmt.Fprintf(w.w, "%s %d %d %d %c", tag, rec.Elapsed, p.X, p.Y, p.Button)
	case event.KeyEvent:
		if w.mode == ModeSys {
			native, mods, ok := w.codec.EncodeNative(p.Code)
			if !ok {
				return fmt.Errorf("no native identity for %v", p.Code)
			}
			_, err = fmt.Fprintf(w.w, "%s %d %d %d %d", tag, rec.Elapsed, native, mods, boolByte(p.Pressed))
		} else {
			_, err = fmt.Fprintf(w.w, "%s %d %d %d", tag, rec.Elapsed, uint32(p.Code), boolByte(p.Pressed))
		}
	case event.WheelEvent:
		_, err = fmt.Fprintf(w.w, "%s %d %s %d %d", tag, rec.Elapsed,
			strconv.FormatFloat(float64(p.Delta), 'g', -1, 32), p.X, p.Y)
	default:
		return fmt.Errorf("payload %T", p)
	}
	return err
}

func (w *Writer) writeBinary(tag string, rec Record) error {
	if _, err := w.w.WriteString(tag); err != nil {
		return err
	}
	var fields []any
	switch p := rec.Event.Payload.(type) {
	case event.ButtonEvent:
		fields = []any{rec.Elapsed, p.Button, byte(p.Status), int32(p.X), int32(p.Y)}
	case event.MotionEvent:
		fields = []any{rec.Elapsed, int32(p.X), int32(p.Y), p.Button}
	case event.KeyEvent:
		fields = []any{rec.Elapsed, uint32(p.Code), boolByte(p.Pressed)}
	case event.WheelEvent:
		fields = []any{rec.Elapsed, p.Delta, int32(p.X), int32(p.Y)}
	default:
		return fmt.Errorf("payload %T", p)
	}
	for _, f := range fields {
		if err := binary.Write(w.w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Reader decodes a record stream
type Reader struct {
	r     *bufio.Reader
	mode  Mode
	codec NativeCodec
}

// NewReader checks the signature and returns a Reader for the body
func NewReader(r io.Reader, codec NativeCodec) (*Reader, error) {
	if codec == nil {
		codec = identityCodec{}
	}
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil || !strings.HasPrefix(line, signature) {
		return nil, fmt.Errorf("%w: %q", ErrSignature, strings.TrimSpace(line))
	}
	mode, err := ParseMode(strings.TrimSuffix(line[len(signature):], "\n"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignature, err)
	}
	return &Reader{r: br, mode: mode, codec: codec}, nil
}

// Mode returns the mode named by the header
func (r *Reader) Mode() Mode { return r.mode }

// Read returns the next record. io.EOF marks a clean end of stream; any
// other failure wraps ErrFormat.
func (r *Reader) Read() (Record, error) {
	var tag [3]byte
	n, err := io.ReadFull(r.r, tag[:])
	if n == 0 && err == io.EOF {
		return Record{}, io.EOF
	}
	if err != nil {
		return Record{}, fmt.Errorf("%w: tag: %v", ErrFormat, err)
	}
	kind, ok := event.KindOf(string(tag[:]))
	if !ok {
		return Record{}, fmt.Errorf("%w: unknown tag %q", ErrFormat, tag[:])
	}

	var rec Record
	if r.mode == ModeBinary {
		rec, err = r.readBinary(kind)
		if err == nil {
			var nl byte
			if nl, err = r.r.ReadByte(); err == nil && nl != '\n' {
				err = fmt.Errorf("missing newline")
			}
		}
	} else {
		var line string
		line, err = r.r.ReadString('\n')
		if err == nil {
			rec, err = r.parseText(kind, strings.Fields(line))
		}
	}
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s: %v", ErrFormat, tag[:], err)
	}
	return rec, nil
}

func (r *Reader) readBinary(kind Kind) (Record, error) {
	var rec Record
	rd := func(v any) error { return binary.Read(r.r, binary.LittleEndian, v) }
	if err := rd(&rec.Elapsed); err != nil {
		return rec, err
	}
	switch kind {
	case event.KindButton:
		var b struct {
			Button, Status byte
			X, Y           int32
		}
		if err := rd(&b); err != nil {
			return rec, err
		}
		rec.Event = event.Button(event.ButtonEvent{Button: b.Button, Status: int(b.Status), X: int(b.X), Y: int(b.Y)})
	case event.KindMotion:
		var m struct {
			X, Y   int32
			Button byte
		}
		if err := rd(&m); err != nil {
			return rec, err
		}
		rec.Event = event.Motion(event.MotionEvent{X: int(m.X), Y: int(m.Y), Button: m.Button})
	case event.KindKey:
		var k struct {
			Code    uint32
			Pressed byte
		}
		if err := rd(&k); err != nil {
			return rec, err
		}
		rec.Event = event.Key(event.KeyEvent{Code: key.Code(k.Code), Pressed: k.Pressed != 0})
	case event.KindWheel:
		var w struct {
			Delta float32
			X, Y  int32
		}
		if err := rd(&w); err != nil {
			return rec, err
		}
		rec.Event = event.Wheel(event.WheelEvent{Delta: w.Delta, X: int(w.X), Y: int(w.Y)})
	}
	return rec, nil
}

func (r *Reader) parseText(kind Kind, f []string) (Record, error) {
	var rec Record
	want := map[Kind]int{event.KindButton: 5, event.KindMotion: 4, event.KindKey: 3, event.KindWheel: 4}[kind]
	if kind == event.KindKey && r.mode == ModeSys {
		want = 4
	}
	if len(f) != want {
		return rec, fmt.Errorf("want %d fields, got %d", want, len(f))
	}
	p := &fieldParser{f: f}
	rec.Elapsed = int32(p.int(32))
	switch kind {
	case event.KindButton:
		b := p.char()
		st := p.int(8)
		x, y := p.int(32), p.int(32)
		rec.Event = event.Button(event.ButtonEvent{Button: b, Status: int(st), X: int(x), Y: int(y)})
	case event.KindMotion:
		x, y := p.int(32), p.int(32)
		rec.Event = event.Motion(event.MotionEvent{X: int(x), Y: int(y), Button: p.char()})
	case event.KindKey:
		var c key.Code
		if r.mode == ModeSys {
			native, mods := p.uint(), p.uint()
			c = r.codec.DecodeNative(native, mods)
		} else {
			c = key.Code(p.uint())
		}
		rec.Event = event.Key(event.KeyEvent{Code: c, Pressed: p.int(8) != 0})
	case event.KindWheel:
		d := p.float()
		x, y := p.int(32), p.int(32)
		rec.Event = event.Wheel(event.WheelEvent{Delta: d, X: int(x), Y: int(y)})
	}
	return rec, p.err
}

// Kind aliases event.Kind inside this package
type Kind = event.Kind

// fieldParser consumes whitespace separated fields, keeping the first error
type fieldParser struct {
	f   []string
	i   int
	err error
}

func (p *fieldParser) next() string {
	if p.i >= len(p.f) {
		return ""
	}
	s := p.f[p.i]
	p.i++
	return s
}

func (p *fieldParser) int(bits int) int64 {
	v, err := strconv.ParseInt(p.next(), 10, bits)
	if err != nil && p.err == nil {
		p.err = err
	}
	return v
}

func (p *fieldParser) uint() uint32 {
	v, err := strconv.ParseUint(p.next(), 10, 32)
	if err != nil && p.err == nil {
		p.err = err
	}
	return uint32(v)
}

func (p *fieldParser) float() float32 {
	v, err := strconv.ParseFloat(p.next(), 32)
	if err != nil && p.err == nil {
		p.err = err
	}
	return float32(v)
}

func (p *fieldParser) char() byte {
	s := p.next()
	if len(s) != 1 {
		if p.err == nil {
			p.err = fmt.Errorf("bad button %q", s)
		}
		return 0
	}
	return s[0]
}
