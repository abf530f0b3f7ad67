package bridge

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/transientvariable/log-go"
	"github.com/transientvariable/nativefs-go"
	"github.com/transientvariable/nativefs-go/memfs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	json "github.com/json-iterator/go"
)

// BridgeTestSuite ...
type BridgeTestSuite struct {
	suite.Suite
	async  *nativefs.Async
	server *Server
}

func NewBridgeTestSuite() *BridgeTestSuite {
	return &BridgeTestSuite{}
}

func (t *BridgeTestSuite) SetupTest() {
	if err := log.SetDefault(log.New(log.WithLevel("debug"))); err != nil {
		t.T().Fatal(err)
	}

	mfs, err := memfs.New()
	require.NoError(t.T(), err)
	require.NoError(t.T(), mfs.MkdirAll("/base/sub", 0755))
	require.NoError(t.T(), mfs.WriteFile("/base/file_one.txt", []byte("Hello world"), 0644))

	fs, err := nativefs.New(nativefs.WithProvider(mfs))
	require.NoError(t.T(), err)

	t.async, err = nativefs.NewAsync(fs)
	require.NoError(t.T(), err)

	t.server, err = New(t.async)
	require.NoError(t.T(), err)
}

func (t *BridgeTestSuite) TearDownTest() {
	_ = t.async.Close()
}

func TestBridgeTestSuite(t *testing.T) {
	suite.Run(t, NewBridgeTestSuite())
}

// send sends the requests to the server and returns the responses in the order they were written.
func (t *BridgeTestSuite) send(requests ...string) []map[string]any {
	var out bytes.Buffer
	err := t.server.Serve(context.Background(), strings.NewReader(strings.Join(requests, "\n")), &out)
	require.NoError(t.T(), err)

	var responses []map[string]any
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var m map[string]any
		require.NoError(t.T(), json.Unmarshal(scanner.Bytes(), &m))
		responses = append(responses, m)
	}
	require.NoError(t.T(), scanner.Err())
	return responses
}

// serve sends the requests to the server and returns the responses keyed by id.
func (t *BridgeTestSuite) serve(requests ...string) map[string]map[string]any {
	responses := make(map[string]map[string]any)
	for _, m := range t.send(requests...) {
		id, _ := m["id"].(string)
		_, dup := responses[id]
		require.False(t.T(), dup, "duplicate response for id %q", id)
		responses[id] = m
	}
	return responses
}

func (t *BridgeTestSuite) assertCode(resp map[string]any, code nativefs.Code) {
	require.NotNil(t.T(), resp)
	assert.EqualValues(t.T(), uint8(code), resp["err"])
	assert.Equal(t.T(), code.String(), resp["code"])
}

func (t *BridgeTestSuite) TestNew() {
	_, err := New(nil)
	assert.Error(t.T(), err)
}

func (t *BridgeTestSuite) TestOperations() {
	responses := t.serve(
		`{"id":"1","op":"readdir","args":["/base"]}`,
		`{"id":"2","op":"stat","args":["/base/file_one.txt"]}`,
		`{"id":"3","op":"readFile","args":["/base/file_one.txt","utf8"]}`,
		`{"id":"4","op":"writeFile","args":["/base/new.txt","new content","utf8"]}`,
		`{"id":"5","op":"stat","args":["/base/sub"]}`,
	)
	require.Len(t.T(), responses, 5)

	t.assertCode(responses["1"], nativefs.NoError)
	assert.ElementsMatch(t.T(), []any{"file_one.txt", "sub"}, responses["1"]["result"])

	t.assertCode(responses["2"], nativefs.NoError)
	stat, ok := responses["2"]["result"].(map[string]any)
	require.True(t.T(), ok)
	assert.Equal(t.T(), true, stat["is_file"])
	assert.Equal(t.T(), false, stat["is_directory"])
	assert.NotNil(t.T(), stat["metadata"])

	t.assertCode(responses["3"], nativefs.NoError)
	assert.Equal(t.T(), "Hello world", responses["3"]["result"])

	t.assertCode(responses["4"], nativefs.NoError)
	assert.NotContains(t.T(), responses["4"], "result")
	assert.NotContains(t.T(), responses["4"], "message")

	stat, ok = responses["5"]["result"].(map[string]any)
	require.True(t.T(), ok)
	assert.Equal(t.T(), true, stat["is_directory"])
	assert.Equal(t.T(), false, stat["is_file"])

	responses = t.serve(
		`{"id":"6","op":"readFile","args":["/base/new.txt","utf-8"]}`,
		`{"id":"7","op":"unlink","args":["/base/new.txt"]}`,
	)
	assert.Equal(t.T(), "new content", responses["6"]["result"])
	t.assertCode(responses["7"], nativefs.NoError)
}

func (t *BridgeTestSuite) TestErrors() {
	responses := t.serve(
		`{"id":"1","op":"readdir","args":["/missing"]}`,
		`{"id":"2","op":"readFile","args":["/base/file_one.txt","utf16"]}`,
		`{"id":"3","op":"unlink","args":["/base/sub"]}`,
		`{"id":"4","op":"readdir","args":["/base/file_one.txt"]}`,
		`{"id":"5","op":"readFile","args":["/base/sub","utf8"]}`,
	)

	t.assertCode(responses["1"], nativefs.ErrNotFound)
	t.assertCode(responses["2"], nativefs.ErrUnsupportedEncoding)
	t.assertCode(responses["3"], nativefs.ErrNotFile)
	t.assertCode(responses["4"], nativefs.ErrNotDirectory)
	t.assertCode(responses["5"], nativefs.ErrCantRead)

	assert.NotEmpty(t.T(), responses["1"]["message"])
	assert.NotContains(t.T(), responses["1"], "result")
}

func (t *BridgeTestSuite) TestInvalidRequests() {
	responses := t.serve(
		`{"id":"1","op":"readdir","args":[42]}`,
		`{"id":"2","op":"readdir","args":[[]]}`,
		`{"id":"3","op":"readdir"}`,
		`{"id":"4","args":["/base"]}`,
		`{"id":"5","op":"rename","args":["/base","/other"]}`,
		`{"id":"6","op":"stat","args":"/base"}`,
		`{"id":"7","op":"writeFile","args":["/base/x.txt",7,"utf8"]}`,
	)

	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		t.assertCode(responses[id], nativefs.ErrInvalidParams)
	}

	invalid := t.send(`[1,2,3]`, `not json`, `  `, `"string"`)
	require.Len(t.T(), invalid, 3)
	for _, resp := range invalid {
		t.assertCode(resp, nativefs.ErrInvalidParams)
		assert.Nil(t.T(), resp["id"])
	}
}

func (t *BridgeTestSuite) TestNumericID() {
	var out bytes.Buffer
	err := t.server.Serve(context.Background(), strings.NewReader(`{"id":42,"op":"stat","args":["/base"]}`), &out)
	require.NoError(t.T(), err)

	var m map[string]any
	require.NoError(t.T(), json.Unmarshal(out.Bytes(), &m))
	assert.EqualValues(t.T(), 42, m["id"])
	t.assertCode(m, nativefs.NoError)
}

func (t *BridgeTestSuite) TestServeContextDone() {
	r, w := io.Pipe()
	defer func() {
		_ = w.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- t.server.Serve(ctx, r, io.Discard)
	}()

	cancel()
	select {
	case err := <-result:
		assert.True(t.T(), errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.T().Fatal("timed out waiting for Serve to return")
	}
}

func (t *BridgeTestSuite) TestServeWriteError() {
	err := t.server.Serve(context.Background(), strings.NewReader(`{"id":"1","op":"stat","args":["/base"]}`),
		failingWriter{})
	assert.Error(t.T(), err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestDecode(t *testing.T) {
	req, err := decode([]byte(`{"id":"1","op":"readFile","args":["/base/file.txt","utf8"],"extra":true}`))
	require.NoError(t, err)
	assert.Equal(t, Request{ID: "1", Op: "readFile", Args: []any{"/base/file.txt", "utf8"}}, req)

	req, err = decode([]byte(`{"op":"stat","args":null}`))
	require.NoError(t, err)
	assert.Nil(t, req.ID)
	assert.Nil(t, req.Args)

	tests := []struct {
		line string
		id   any
	}{
		{line: `{"id":"2","op":"stat","args":"/base"}`, id: "2"},
		{line: `{"id":3,"op":7,"args":["/base"]}`, id: float64(3)},
		{line: `{"id":"4","args":["/base"]}`, id: "4"},
		{line: `{"id":"5","op":""}`, id: "5"},
		{line: `[1,2,3]`},
		{line: `"string"`},
		{line: `not json`},
		{line: `{"id":"6","op":`},
	}

	for _, tt := range tests {
		req, err := decode([]byte(tt.line))
		assert.ErrorIs(t, err, nativefs.ErrInvalidParams, tt.line)
		assert.Equal(t, tt.id, req.ID, tt.line)
	}
}
