// Package keychaintest provides a cross-process testable keychain.Backend
// and a conformance suite for backends.
package keychaintest

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/tidwall/gjson"
	"go.abhg.dev/pwstore/internal/attr"
	"go.abhg.dev/pwstore/internal/keychain"
)

// Server is a test server for keychain.Backend.
// Records are held in memory for the lifetime of the test.
type Server struct {
	t    testing.TB
	mem  keychain.Memory
	http *httptest.Server
}

// NewServer creates a new server for a credential store.
// It will automatically shut down when the test ends.
func NewServer(t testing.TB) *Server {
	srv := Server{t: t}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /find", srv.find)
	mux.HandleFunc("POST /insert", srv.insert)
	mux.HandleFunc("POST /update", srv.update)
	mux.HandleFunc("POST /delete", srv.delete)

	srv.http = httptest.NewServer(mux)
	t.Cleanup(srv.http.Close)
	return &srv
}

// URL returns the URL at which the server is listening.
// Use [Client] to talk to this server.
func (s *Server) URL() string {
	return s.http.URL
}

type request struct {
	Query   attr.Set `json:"query"`
	Changes attr.Set `json:"changes"`
}

type response struct {
	Status int32  `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   []byte `json:"data,omitempty"`
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*request, bool) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func (s *Server) reply(w http.ResponseWriter, data []byte, err error) {
	resp := response{
		Status: int32(keychain.StatusOf(err)),
		Data:   data,
	}
	if err != nil {
		resp.Error = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.t.Logf("[keychain] write response: %v", err)
	}
}

// find is the HTTP handler for finding a record.
func (s *Server) find(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	s.t.Logf("[keychain] find(%v)", req.Query)

	data, err := s.mem.FindOne(req.Query)
	s.reply(w, data, err)
}

// insert is the HTTP handler for inserting a record.
func (s *Server) insert(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	s.t.Logf("[keychain] insert(%v)", req.Query)

	s.reply(w, nil, s.mem.Insert(req.Query))
}

// update is the HTTP handler for updating records.
func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	s.t.Logf("[keychain] update(%v, %v)", req.Query, req.Changes)

	s.reply(w, nil, s.mem.Update(req.Query, req.Changes))
}

// delete is the HTTP handler for deleting records.
func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	s.t.Logf("[keychain] delete(%v)", req.Query)

	s.reply(w, nil, s.mem.Delete(req.Query))
}

// Client is a client for a keychain test server.
// It is safe for concurrent use.
type Client struct {
	url *url.URL
}

var _ keychain.Backend = (*Client)(nil)

// NewClient creates a new client
// capable of talking to a keychain test server.
//
// The server URL should be the base URL of the server.
func NewClient(srvURL string) (*Client, error) {
	u, err := url.Parse(srvURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	return &Client{url: u}, nil
}

func (c *Client) call(op string, req request) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal: %w", op, err)
	}

	u := c.url.JoinPath("/" + op)
	resp, err := http.Post(u.String(), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", op, resp.Status)
	}

	bs, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !gjson.ValidBytes(bs) {
		return nil, fmt.Errorf("%s: invalid response: %w", op, keychain.StatusDecode)
	}

	result := gjson.ParseBytes(bs)
	if status := keychain.Status(result.Get("status").Int()); status != keychain.StatusSuccess {
		if status == keychain.StatusItemNotFound || status == keychain.StatusDuplicateItem {
			return nil, status
		}
		return nil, fmt.Errorf("%s: %s: %w", op, result.Get("error").String(), status)
	}

	data := result.Get("data")
	if !data.Exists() {
		return nil, nil
	}

	payload, err := base64.StdEncoding.DecodeString(data.String())
	if err != nil {
		return nil, fmt.Errorf("%s: decode data: %w: %w", op, err, keychain.StatusDecode)
	}
	return payload, nil
}

// FindOne finds a record on the server.
func (c *Client) FindOne(query attr.Set) ([]byte, error) {
	return c.call("find", request{Query: query})
}

// Insert inserts a record on the server.
func (c *Client) Insert(item attr.Set) error {
	_, err := c.call("insert", request{Query: item})
	return err
}

// Update updates records on the server.
func (c *Client) Update(query, changes attr.Set) error {
	_, err := c.call("update", request{Query: query, Changes: changes})
	return err
}

// Delete deletes records on the server.
func (c *Client) Delete(query attr.Set) error {
	_, err := c.call("delete", request{Query: query})
	return err
}
