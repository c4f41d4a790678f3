package handlers

import (
	"net/http"
	"testing"

	"github.com/promojour/promojour/internal/distribution"
	"github.com/promojour/promojour/internal/graph"
	"github.com/promojour/promojour/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleDistributeEmptyRun(t *testing.T) {
	st, cleanup, err := storage.NewTestStorage()
	require.NoError(t, err)
	defer cleanup()

	distributor := distribution.NewDistributor(st, graph.NewClient())
	handler := NewDistributeHandler(distributor)

	c, rec := NewTestContext(http.MethodPost, "/api/distribute", nil)
	require.NoError(t, handler.HandleDistribute(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "0 campaigns")
	assert.NotEmpty(t, body["timestamp"])
}
