package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const datasetHeader = "Task_Type,Question,Essay,Examiner_Commen,Task_Response,Coherence_Cohesion,Lexical_Resource,Range_Accuracy,Overall\n"

func datasetRow(taskType, question, essay, overall string) string {
	return strings.Join([]string{taskType, `"` + question + `"`, `"` + essay + `"`, `"Clear position."`, "7", "6", "7", "6", overall}, ",") + "\n"
}

func TestDatasetLoader_FiltersRows(t *testing.T) {
	csv := datasetHeader +
		datasetRow("2", "Some people say cities are too crowded. Discuss both views.", "Cities  are crowded , but vibrant .", "6.5") +
		datasetRow("1", "The chart shows rainfall.", "The chart shows...", "6") +
		"2,too,few,columns\n" +
		datasetRow("2", "", "Essay without a question.", "7") +
		datasetRow("2", "Question without an overall band?", "Some essay.", "") +
		datasetRow("2", "Should museums be free, or should they charge?", "Museums should be free.", "7")

	store := &mockStore{}
	embedder := &mockEmbedder{}
	loader := NewDatasetLoader(store, embedder, nil, 10, 0)

	summary, err := loader.LoadCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, LoadSummary{TotalRows: 6, Processed: 2, Skipped: 4, Batches: 1}, summary)
	require.Len(t, store.batches, 1)
	require.Len(t, store.batches[0], 2)

	first := store.batches[0][0]
	assert.Equal(t, "2", first.TaskType)
	assert.Equal(t, "Cities are crowded, but vibrant.", first.Body)
	assert.Equal(t, "some people say cities are too crowded", first.Topic)
	assert.Equal(t, 5, first.WordCount)
	assert.Equal(t, "6.5", first.Band)
	assert.Equal(t, 2, first.SourceLine)
	assert.Equal(t, "Clear position.", first.ExaminerComment)
	assert.True(t, strings.HasPrefix(first.Content, "IELTS Writing Task 2 Essay (Band 6.5)"))
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, first.Embedding.Slice())

	second := store.batches[0][1]
	assert.Equal(t, 7, second.SourceLine)
	assert.Equal(t, "should museums be free", second.Topic)

	require.Len(t, embedder.inputs, 2)
	assert.Equal(t, first.Content, embedder.inputs[0])
}

func TestDatasetLoader_Batches(t *testing.T) {
	var b strings.Builder
	b.WriteString(datasetHeader)
	for i := 0; i < 5; i++ {
		b.WriteString(datasetRow("2", "Is remote work better?", "Remote work saves time.", "7"))
	}

	store := &mockStore{}
	loader := NewDatasetLoader(store, &mockEmbedder{}, nil, 2, time.Millisecond)

	summary, err := loader.LoadCSV(context.Background(), strings.NewReader(b.String()))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Batches)
	require.Len(t, store.batches, 3)
	assert.Len(t, store.batches[0], 2)
	assert.Len(t, store.batches[1], 2)
	assert.Len(t, store.batches[2], 1)
}

func TestDatasetLoader_DefaultBatchSize(t *testing.T) {
	loader := NewDatasetLoader(&mockStore{}, &mockEmbedder{}, nil, 0, 0)
	assert.Equal(t, 2, loader.BatchSize)
}

func TestDatasetLoader_NoValidRows(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"header only", datasetHeader},
		{"all filtered", datasetHeader + datasetRow("1", "Describe the graph.", "The graph...", "6")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			_, err := NewDatasetLoader(store, &mockEmbedder{}, nil, 2, 0).LoadCSV(context.Background(), strings.NewReader(tt.csv))
			assert.ErrorIs(t, err, ErrNoValidRows)
			assert.Empty(t, store.batches)
		})
	}
}

func TestDatasetLoader_EmptyInput(t *testing.T) {
	_, err := NewDatasetLoader(&mockStore{}, &mockEmbedder{}, nil, 2, 0).LoadCSV(context.Background(), strings.NewReader(""))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoValidRows)
}

func TestDatasetLoader_EmbeddingFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	store := &mockStore{}
	loader := NewDatasetLoader(store, &mockEmbedder{err: cause}, nil, 2, 0)

	_, err := loader.LoadCSV(context.Background(), strings.NewReader(datasetHeader+datasetRow("2", "Is remote work better?", "Remote work saves time.", "7")))

	assert.ErrorIs(t, err, cause)
	assert.Empty(t, store.batches)
}

func TestDatasetLoader_StoreFailure(t *testing.T) {
	cause := errors.New("relation does not exist")
	loader := NewDatasetLoader(&mockStore{createErr: cause}, &mockEmbedder{}, nil, 2, 0)

	_, err := loader.LoadCSV(context.Background(), strings.NewReader(datasetHeader+datasetRow("2", "Is remote work better?", "Remote work saves time.", "7")))

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store batch 1")
}

func TestDatasetLoader_CancelledBetweenBatches(t *testing.T) {
	var b strings.Builder
	b.WriteString(datasetHeader)
	for i := 0; i < 4; i++ {
		b.WriteString(datasetRow("2", "Is remote work better?", "Remote work saves time.", "7"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &mockStore{}
	summary, err := NewDatasetLoader(store, &mockEmbedder{}, nil, 2, time.Hour).LoadCSV(ctx, strings.NewReader(b.String()))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, summary.Batches)
}

// failingReader serves its data once, then fails every read.
type failingReader struct {
	r   io.Reader
	err error
}

func (f *failingReader) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if errors.Is(err, io.EOF) {
		return n, f.err
	}
	return n, err
}

func TestDatasetLoader_ReaderFailureStopsImport(t *testing.T) {
	cause := errors.New("disk gone")
	r := &failingReader{r: strings.NewReader(datasetHeader + datasetRow("2", "Is remote work better?", "Remote work saves time.", "7")), err: cause}
	store := &mockStore{}

	done := make(chan error, 1)
	go func() {
		_, err := NewDatasetLoader(store, &mockEmbedder{}, nil, 2, 0).LoadCSV(context.Background(), r)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, cause)
		assert.Empty(t, store.batches)
	case <-time.After(2 * time.Second):
		t.Fatal("LoadCSV did not return on a persistent read error")
	}
}
