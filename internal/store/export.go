package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// arrowSchema is the columnar layout for exported displacement
// samples.
var arrowSchema = arrow.NewSchema([]arrow.Field{
	{Name: "trial", Type: arrow.PrimitiveTypes.Int64},
	{Name: "displacement", Type: arrow.PrimitiveTypes.Float64},
	{Name: "final_x", Type: arrow.PrimitiveTypes.Int64},
	{Name: "final_y", Type: arrow.PrimitiveTypes.Int64},
}, nil)

// ExportJSONL writes a run's samples to w, one JSON object per line.
func (s *RunStore) ExportJSONL(ctx context.Context, runID string, w io.Writer) error {
	samples, err := s.Samples(ctx, runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	for _, sample := range samples {
		if err := enc.Encode(sample); err != nil {
			return fmt.Errorf("failed to encode sample %d: %w", sample.Trial, err)
		}
	}
	return nil
}

// ExportArrow writes a run's samples to w as a single Arrow IPC file
// with one record batch.
func (s *RunStore) ExportArrow(ctx context.Context, runID string, w io.Writer) error {
	samples, err := s.Samples(ctx, runID)
	if err != nil {
		return err
	}

	pool := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(pool, arrowSchema)
	defer builder.Release()

	trials := builder.Field(0).(*array.Int64Builder)
	displacements := builder.Field(1).(*array.Float64Builder)
	finalXs := builder.Field(2).(*array.Int64Builder)
	finalYs := builder.Field(3).(*array.Int64Builder)

	for _, sample := range samples {
		trials.Append(int64(sample.Trial))
		displacements.Append(sample.Displacement)
		finalXs.Append(int64(sample.FinalX))
		finalYs.Append(int64(sample.FinalY))
	}

	record := builder.NewRecord()
	defer record.Release()

	// ipc.NewFileWriter needs an io.WriteSeeker, so stage the file in
	// memory and copy it to w once finalized.
	buf := &seekBuffer{}
	writer, err := ipc.NewFileWriter(buf, ipc.WithSchema(arrowSchema), ipc.WithAllocator(pool))
	if err != nil {
		return fmt.Errorf("failed to create arrow writer: %w", err)
	}
	if err := writer.Write(record); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write arrow record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize arrow file: %w", err)
	}
	if _, err := w.Write(buf.data); err != nil {
		return fmt.Errorf("failed to write arrow file: %w", err)
	}
	return nil
}

// seekBuffer is an in-memory io.WriteSeeker.
type seekBuffer struct {
	data []byte
	pos  int64
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + int64(len(p)); need > int64(len(b.data)) {
		if need > int64(cap(b.data)) {
			grown := make([]byte, need)
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:need]
		}
	}
	copy(b.data[b.pos:], p)
	b.pos += int64(len(p))
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = b.pos + offset
	case io.SeekEnd:
		pos = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("seekBuffer: invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("seekBuffer: negative position %d", pos)
	}
	b.pos = pos
	return pos, nil
}
