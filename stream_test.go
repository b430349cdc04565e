package pyrosimple_test

import (
	"bytes"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohnFlowerful/pyrosimple"
)

func itemSeq(items ...pyrosimple.Item) iter.Seq[pyrosimple.Item] {
	return func(yield func(pyrosimple.Item) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

func TestWriteIterCSVHeaderOnce(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := newEngine(t).WriteIter(&buf, pyrosimple.CSV, "name size.raw", itemSeq(writeItems...))
	require.NoError(t, err)
	assert.Equal(t, "NAME,SIZE\nalpha,2048\nbeta,512\n", buf.String())
}

func TestWriteIterCSVEmptyStillHasHeader(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := newEngine(t).WriteIter(&buf, pyrosimple.CSV, "name", itemSeq())
	require.NoError(t, err)
	assert.Equal(t, "NAME\n", buf.String())
}

func TestWriteIterCollectsTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := newEngine(t).WriteIter(&buf, pyrosimple.Table, "name size.raw", itemSeq(writeItems...))
	require.NoError(t, err)
	assert.Equal(t, "NAME  SIZE\nalpha 2048\nbeta  512\n", buf.String())
}

func TestWriteIterENVMatchesBatch(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)

	var batch, streamed bytes.Buffer
	require.NoError(t, eng.Write(&batch, pyrosimple.ENV, "name", writeItems...))
	require.NoError(t, eng.WriteIter(&streamed, pyrosimple.ENV, "name", itemSeq(writeItems...)))

	// Items stay blank-line separated no matter how they arrive.
	assert.Equal(t, "NAME=\"alpha\"\n\nNAME=\"beta\"\n", batch.String())
	assert.Equal(t, batch.String(), streamed.String())
}

func TestWriteIterUnsupported(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := newEngine(t).WriteIter(&buf, pyrosimple.Format("xml"), "name", itemSeq())
	assert.ErrorIs(t, err, pyrosimple.ErrUnsupportedFormat)
}

func TestWriteChan(t *testing.T) {
	t.Parallel()
	ch := make(chan pyrosimple.Item, len(writeItems))
	for _, item := range writeItems {
		ch <- item
	}
	close(ch)

	var buf bytes.Buffer
	err := newEngine(t).WriteChan(&buf, pyrosimple.JSONL, "name", ch)
	require.NoError(t, err)
	assert.Equal(t, "{\"name\":\"alpha\"}\n{\"name\":\"beta\"}\n", buf.String())
}
