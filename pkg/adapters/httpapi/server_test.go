package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arborlab/arbor"
	"github.com/arborlab/arbor/internal/logging"
	"github.com/arborlab/arbor/pkg/adapters/httpapi"
	"github.com/arborlab/arbor/pkg/adapters/memory"
	"github.com/arborlab/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const approvalJSON = `{
  "id": "approval",
  "startNodeId": "q1",
  "nodes": {
    "q1": {
      "prompt": "Do you approve?",
      "type": "SingleChoice",
      "choices": [
        {"key": "yes", "label": "Yes", "nextNodeId": "end_yes"},
        {"key": "no", "label": "No", "nextNodeId": "end_no"}
      ]
    },
    "end_yes": {"prompt": "Approved", "type": "End"},
    "end_no": {"prompt": "Denied", "type": "End"}
  }
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	eng, err := arbor.New("", arbor.WithTrailStore(memory.NewStore()))
	require.NoError(t, err)
	require.NoError(t, eng.LoadBytes([]byte(approvalJSON)))

	srv := httptest.NewServer(httpapi.NewHandler(eng, logging.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestServer_Validate(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Valid", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/validate", approvalJSON)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		result := decodeBody[httpapi.ValidationResult](t, resp)
		assert.True(t, result.Valid)
	})

	t.Run("DanglingReference", func(t *testing.T) {
		broken := strings.Replace(approvalJSON, `"nextNodeId": "end_no"`, `"nextNodeId": "ghost"`, 1)
		resp := postJSON(t, srv.URL+"/validate", broken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		result := decodeBody[httpapi.ValidationResult](t, resp)
		assert.False(t, result.Valid)
		assert.Equal(t, "structural", result.Kind)
		assert.Contains(t, result.Error, "ghost")
	})

	t.Run("Malformed", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/validate", `{"id":`)
		result := decodeBody[httpapi.ValidationResult](t, resp)
		assert.False(t, result.Valid)
		assert.Equal(t, "parse", result.Kind)
	})

	// Validation must not publish: the active tree is untouched.
	t.Run("DoesNotPublish", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/tree")
		require.NoError(t, err)
		tree := decodeBody[domain.Tree](t, resp)
		assert.Equal(t, "approval", tree.ID)
	})
}

func TestServer_PublishRejectedKeepsActiveTree(t *testing.T) {
	srv := newTestServer(t)

	cyclic := `{
		"id": "cyclic",
		"startNodeId": "a",
		"nodes": {
			"a": {"type": "text", "defaultNextNodeId": "b"},
			"b": {"type": "text", "defaultNextNodeId": "a"}
		}
	}`
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/tree", bytes.NewReader([]byte(cyclic)))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	result := decodeBody[httpapi.ValidationResult](t, resp)
	assert.Equal(t, "cycle", result.Kind)

	getResp, err := http.Get(srv.URL + "/tree")
	require.NoError(t, err)
	tree := decodeBody[domain.Tree](t, getResp)
	assert.Equal(t, "approval", tree.ID)
}

func TestServer_StartAndNodes(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/start")
	require.NoError(t, err)
	start := decodeBody[domain.Node](t, resp)
	assert.Equal(t, "q1", start.ID)

	resp, err = http.Get(srv.URL + "/nodes")
	require.NoError(t, err)
	listing := decodeBody[map[string][]string](t, resp)
	assert.Equal(t, []string{"end_no", "end_yes", "q1"}, listing["nodes"])

	resp, err = http.Get(srv.URL + "/nodes/end_yes")
	require.NoError(t, err)
	node := decodeBody[domain.Node](t, resp)
	assert.Equal(t, "Approved", node.Prompt)

	resp, err = http.Get(srv.URL + "/nodes/ghost")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestServer_Resolve(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Match", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/resolve", `{"nodeId": "q1", "response": "Yes please"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		result := decodeBody[httpapi.ResolveResponse](t, resp)
		assert.Equal(t, "end_yes", result.NextNodeID)
		require.NotNil(t, result.NextNode)
		assert.Equal(t, "Approved", result.NextNode.Prompt)
		assert.True(t, result.Done) // next node is terminal
	})

	t.Run("TerminalNode", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/resolve", `{"nodeId": "end_yes", "response": "whatever"}`)
		result := decodeBody[httpapi.ResolveResponse](t, resp)
		assert.True(t, result.Done)
		assert.Empty(t, result.NextNodeID)
	})

	t.Run("UnknownNode", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/resolve", `{"nodeId": "ghost", "response": "hm"}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestServer_Trails(t *testing.T) {
	srv := newTestServer(t)

	trail := `{"tree_id": "approval", "steps": [{"node_id": "q1", "response": "yes"}], "completed": true}`
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/trails/t-1", strings.NewReader(trail))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	getResp, err := http.Get(srv.URL + "/trails/t-1")
	require.NoError(t, err)
	loaded := decodeBody[domain.Trail](t, getResp)
	assert.Equal(t, "t-1", loaded.ID)
	assert.Equal(t, "approval", loaded.TreeID)

	listResp, err := http.Get(srv.URL + "/trails")
	require.NoError(t, err)
	listing := decodeBody[map[string][]string](t, listResp)
	assert.Contains(t, listing["trails"], "t-1")

	missingResp, err := http.Get(srv.URL + "/trails/ghost")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, missingResp.StatusCode)
	missingResp.Body.Close()
}

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(t)

	// Drive one resolve so the counter exists.
	postJSON(t, srv.URL+"/resolve", `{"nodeId": "q1", "response": "no"}`).Body.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "arbor_resolves_total")
}

func TestServer_Graph(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/tree/graph.mmd")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "graph TD")
	assert.Contains(t, buf.String(), "end_yes")
}
