package wire

import (
	"context"
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// typeFormat keys one codec in a Registry.
type typeFormat struct {
	t reflect.Type
	f FormatID
}

// Registry maps (type, FormatID) pairs to codecs. Registration is
// append-only: a duplicate pair is a configuration error and the first
// registration stays active. The intended lifecycle is register during
// startup, resolve thereafter; the concurrent map keeps a late
// registration from corrupting in-flight lookups even so.
type Registry struct {
	codecs *xsync.Map[typeFormat, anyCodec]
	opts   Options
}

// NewRegistry creates a registry preloaded with the built-in primitive
// codecs. A nil opts means defaults.
func NewRegistry(opts *Options) *Registry {
	r := &Registry{
		codecs: xsync.NewMap[typeFormat, anyCodec](),
		opts:   opts.norm(),
	}
	registerBuiltins(r)
	return r
}

// Default is the process-wide registry, preloaded with the built-in
// codecs under default options.
var Default = NewRegistry(nil)

// Options returns the registry's normalized options.
func (r *Registry) Options() Options { return r.opts }

// NewEncoder creates an encode cursor carrying the registry's options.
func (r *Registry) NewEncoder(ctx context.Context, w Writer) (*Encoder, error) {
	return NewEncoder(ctx, w, &r.opts)
}

// NewDecoder creates a decode cursor carrying the registry's options.
func (r *Registry) NewDecoder(ctx context.Context, rd Reader) (*Decoder, error) {
	return NewDecoder(ctx, rd, &r.opts)
}

func (r *Registry) register(t reflect.Type, f FormatID, c anyCodec) error {
	if f == "" {
		f = r.opts.DefaultFormat
	}
	if _, loaded := r.codecs.LoadOrStore(typeFormat{t, f}, c); loaded {
		return fmt.Errorf("%w: %s under %q", ErrDuplicateFormat, t, f)
	}
	return nil
}

func (r *Registry) resolve(t reflect.Type, f FormatID) (anyCodec, error) {
	if f == "" {
		f = r.opts.DefaultFormat
	}
	c, ok := r.codecs.Load(typeFormat{t, f})
	if !ok {
		return nil, fmt.Errorf("%w: %s under %q", ErrUnknownFormat, t, f)
	}
	return c, nil
}

// Encode resolves the codec for v's dynamic type under format and
// encodes v through e. An empty format selects the registry default.
func (r *Registry) Encode(e *Encoder, format FormatID, v any) error {
	c, err := r.resolve(reflect.TypeOf(v), format)
	if err != nil {
		return err
	}
	return c.encodeAny(e, v)
}

// Decode resolves the codec for (t, format) and decodes one value.
func (r *Registry) Decode(d *Decoder, t reflect.Type, format FormatID) (any, error) {
	c, err := r.resolve(t, format)
	if err != nil {
		return nil, err
	}
	return c.decodeAny(d)
}

// --- Typed front ends ---

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register binds codec to (T, format) in reg. It fails with
// ErrDuplicateFormat if the pair is already taken.
func Register[T any](reg *Registry, format FormatID, codec Codec[T]) error {
	return reg.register(typeOf[T](), format, erased[T]{codec})
}

// MustRegister is Register that panics on error, for startup wiring.
func MustRegister[T any](reg *Registry, format FormatID, codec Codec[T]) {
	if err := Register(reg, format, codec); err != nil {
		panic(err)
	}
}

// Lookup returns the codec registered for (T, format). An empty format
// selects the registry default.
func Lookup[T any](reg *Registry, format FormatID) (Codec[T], error) {
	c, err := reg.resolve(typeOf[T](), format)
	if err != nil {
		return nil, err
	}
	if typed, ok := c.(erased[T]); ok {
		return typed.c, nil
	}
	// Registered through the dynamic surface; adapt back through the
	// erased interface.
	return CodecFunc[T]{
		EncodeFunc: func(e *Encoder, v T) error { return c.encodeAny(e, v) },
		DecodeFunc: func(d *Decoder) (T, error) {
			v, err := c.decodeAny(d)
			if err != nil {
				var zero T
				return zero, err
			}
			t, ok := v.(T)
			if !ok {
				var zero T
				return zero, fmt.Errorf("%w: decoded %T", ErrValueType, v)
			}
			return t, nil
		},
	}, nil
}

// EncodeValue resolves the codec for (T, format) in reg and encodes v
// through e.
func EncodeValue[T any](reg *Registry, e *Encoder, format FormatID, v T) error {
	c, err := Lookup[T](reg, format)
	if err != nil {
		return err
	}
	return c.Encode(e, v)
}

// DecodeValue resolves the codec for (T, format) in reg and decodes one
// value through d.
func DecodeValue[T any](reg *Registry, d *Decoder, format FormatID) (T, error) {
	c, err := Lookup[T](reg, format)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Decode(d)
}

// registerBuiltins seeds the primitive codec set. Primitives go through
// the same Register surface as user types; nothing here is privileged.
func registerBuiltins(r *Registry) {
	// Fixed-width integers in both byte orders: one type, many formats,
	// selected per call.
	MustRegister(r, FormatFixed, Uint8Codec())
	MustRegister(r, FormatFixed, Uint16Codec(LE))
	MustRegister(r, FormatFixed, Uint32Codec(LE))
	MustRegister(r, FormatFixed, Uint64Codec(LE))
	MustRegister(r, FormatFixed, Int8Codec())
	MustRegister(r, FormatFixed, Int16Codec(LE))
	MustRegister(r, FormatFixed, Int32Codec(LE))
	MustRegister(r, FormatFixed, Int64Codec(LE))
	MustRegister(r, FormatFixed, BoolCodec())

	MustRegister(r, FormatFixedBE, Uint8Codec())
	MustRegister(r, FormatFixedBE, Uint16Codec(BE))
	MustRegister(r, FormatFixedBE, Uint32Codec(BE))
	MustRegister(r, FormatFixedBE, Uint64Codec(BE))
	MustRegister(r, FormatFixedBE, Int8Codec())
	MustRegister(r, FormatFixedBE, Int16Codec(BE))
	MustRegister(r, FormatFixedBE, Int32Codec(BE))
	MustRegister(r, FormatFixedBE, Int64Codec(BE))
	MustRegister(r, FormatFixedBE, BoolCodec())

	MustRegister(r, FormatFramed, BytesCodec())
	MustRegister(r, FormatFramed, StringCodec())
}
