// Package data turns a labeled tabular source into batches for model training.
//
// A Reader pulls up to BatchSize rows per call to Next. Every column except the
// label column becomes a feature, in header order; the label cell is looked up in
// an ordered label set and one-hot encoded. The last batch of a source is short
// when the row count is not a multiple of the batch size.
//
// A Reader is forward-only and cannot be rewound; build a new one over a new
// source to read the data again.
package data

import (
	"fmt"
	"iter"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"tabtrain/pkg/dataprep"
	"tabtrain/pkg/tabular"
)

// DefaultBatchSize is the batch size of a new Reader.
const DefaultBatchSize = 100

// record is one parsed row waiting in the staging buffer.
type record struct {
	features []float64
	label    int
}

// Reader reads a tabular source in batches. It is not safe for concurrent use.
type Reader struct {
	src      *tabular.Source
	owned    bool
	labels   *dataprep.LabelSet
	labelIdx int
	columns  []string

	batchSize  int
	normalizer Normalizer

	// staging buffer; empty on entry to and exit from Next
	buffer []record

	log *slog.Logger
}

type options struct {
	logger     *slog.Logger
	srcOptions []tabular.Option
}

// Option configures a Reader.
type Option func(*options)

// WithLogger sets the logger for debug output. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSourceOptions passes options to the tabular.Source created by Open.
func WithSourceOptions(opts ...tabular.Option) Option {
	return func(o *options) { o.srcOptions = append(o.srcOptions, opts...) }
}

// NewReader builds a Reader over src. labelCol picks the label column and labels
// lists the valid label values; a label's position in the list is its class index.
// The Reader does not close src.
func NewReader(src *tabular.Source, labelCol tabular.ColumnRef, labels []string, opts ...Option) (*Reader, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return newReader(src, labelCol, labels, o)
}

// Open reads the file at path. The returned Reader owns the file; call Close.
func Open(path string, labelCol tabular.ColumnRef, labels []string, opts ...Option) (*Reader, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	srcOpts := append([]tabular.Option{tabular.WithLogger(o.logger)}, o.srcOptions...)
	src, err := tabular.Open(path, srcOpts...)
	if err != nil {
		return nil, err
	}
	r, err := newReader(src, labelCol, labels, o)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.owned = true
	return r, nil
}

func newReader(src *tabular.Source, labelCol tabular.ColumnRef, labels []string, o options) (*Reader, error) {
	idx, err := src.FieldIndex(labelCol)
	if err != nil {
		return nil, err
	}
	if src.Size() < 2 {
		return nil, ErrNoFeatures
	}
	ls, err := dataprep.NewLabelSet(labels)
	if err != nil {
		return nil, err
	}
	r := &Reader{
		src:      src,
		labels:   ls,
		labelIdx: idx,
		columns:  src.Columns(),
		log:      o.logger,
	}
	if err := r.SetBatchSize(DefaultBatchSize); err != nil {
		return nil, err
	}
	return r, nil
}

// SetBatchSize changes the number of rows pulled by later calls to Next.
// Batches already returned are unaffected.
func (r *Reader) SetBatchSize(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrBadBatchSize, n)
	}
	r.batchSize = n
	r.buffer = make([]record, 0, min(n, 4096))
	return nil
}

// BatchSize returns the current batch size.
func (r *Reader) BatchSize() int { return r.batchSize }

// SetNormalizer sets the transform applied to every later batch. nil clears it.
// The Reader keeps a reference but never fits or otherwise modifies n.
func (r *Reader) SetNormalizer(n Normalizer) { r.normalizer = n }

// Normalizer returns the current normalizer, or nil.
func (r *Reader) Normalizer() Normalizer { return r.normalizer }

// Labels returns the label set in class index order.
func (r *Reader) Labels() []string { return r.labels.Names() }

// LabelIndex returns the 0-based index of the label column.
func (r *Reader) LabelIndex() int { return r.labelIdx }

// NumFeatures returns the feature count of every batch.
func (r *Reader) NumFeatures() int { return len(r.columns) - 1 }

// Schema describes the batches this Reader produces.
func (r *Reader) Schema() Schema {
	names := make([]string, 0, r.NumFeatures())
	for i, c := range r.columns {
		if i != r.labelIdx {
			names = append(names, c)
		}
	}
	return Schema{
		FeatureNames: names,
		Label:        r.columns[r.labelIdx],
		Classes:      r.labels.Names(),
	}
}

// HasNext reports whether the source has at least one more row.
func (r *Reader) HasNext() bool { return r.src.HasNext() }

// Next returns the next batch. It holds BatchSize rows, or fewer at the end of
// the source. If any row fails to parse, no batch is returned and the rows read
// so far in this call are dropped. Next returns ErrNoMoreData once HasNext is
// false.
func (r *Reader) Next() (*Batch, error) {
	if !r.src.HasNext() {
		return nil, ErrNoMoreData
	}
	for len(r.buffer) < r.batchSize && r.src.HasNext() {
		rec, err := r.readRecord()
		if err != nil {
			r.resetBuffer()
			return nil, err
		}
		r.buffer = append(r.buffer, rec)
	}

	b := r.assemble()
	r.resetBuffer()

	if r.normalizer != nil {
		if err := r.normalizer.Transform(b); err != nil {
			return nil, fmt.Errorf("data: normalize batch: %w", err)
		}
	}
	r.log.Debug("data: batch assembled",
		"rows", b.Len(), "features", b.NumFeatures(), "classes", b.NumClasses(),
		"normalized", r.normalizer != nil)
	return b, nil
}

// All iterates over the remaining batches. Iteration stops after the first error,
// which is yielded with a nil batch.
func (r *Reader) All() iter.Seq2[*Batch, error] {
	return func(yield func(*Batch, error) bool) {
		for r.HasNext() {
			b, err := r.Next()
			if !yield(b, err) || err != nil {
				return
			}
		}
	}
}

// Close closes the source if the Reader was created by Open.
func (r *Reader) Close() error {
	if !r.owned {
		return nil
	}
	return r.src.Close()
}

func (r *Reader) readRecord() (record, error) {
	row, err := r.src.Next()
	if err != nil {
		return record{}, err
	}
	rec := record{features: make([]float64, 0, r.NumFeatures())}
	for i := range len(r.columns) {
		if i == r.labelIdx {
			name, err := row.Get(i)
			if err != nil {
				return record{}, err
			}
			idx, ok := r.labels.Index(name)
			if !ok {
				return record{}, fmt.Errorf("%w %q on line %d", ErrInvalidLabel, name, row.Line())
			}
			rec.label = idx
			continue
		}
		v, err := row.Float64(i)
		if err != nil {
			return record{}, err
		}
		rec.features = append(rec.features, v)
	}
	return rec, nil
}

// assemble copies the staging buffer into freshly allocated matrices.
func (r *Reader) assemble() *Batch {
	n := len(r.buffer)
	features := mat.NewDense(n, r.NumFeatures(), nil)
	labels := mat.NewDense(n, r.labels.Len(), nil)
	for i, rec := range r.buffer {
		features.SetRow(i, rec.features)
		labels.Set(i, rec.label, 1)
	}
	return &Batch{Features: features, Labels: labels}
}

func (r *Reader) resetBuffer() {
	clear(r.buffer)
	r.buffer = r.buffer[:0]
}
