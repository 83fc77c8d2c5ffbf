package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ironsheep/png-tools-mcp/internal/config"
)

func TestNew(t *testing.T) {
	s := New(nil)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cache == nil {
		t.Fatal("New() did not initialize cache")
	}
	if s.cfg == nil || s.cfg.Threshold != config.DefaultThreshold {
		t.Fatalf("New(nil) should use the default config, got %+v", s.cfg)
	}
	if s.fetcher == nil {
		t.Fatal("New() did not initialize fetcher")
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			"test-1",
			"tools/list",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			float64(42), // JSON numbers decode as float64
			"ping",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			nil,
			"initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}

			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := New(nil)
	req := &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"}

	resp := s.handleRequest(context.Background(), req)

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("serverInfo should be a map")
	}
	if serverInfo["name"] != "png-tools-mcp" {
		t.Errorf("serverInfo.name: got %v", serverInfo["name"])
	}
	if serverInfo["version"] != Version {
		t.Errorf("serverInfo.version: got %v", serverInfo["version"])
	}
}

func TestHandleRequest_Routing(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		wantNil  bool
		wantCode int
	}{
		{"ping", "ping", false, 0},
		{"tools list", "tools/list", false, 0},
		{"initialized notification", "notifications/initialized", true, 0},
		{"unknown method", "nonexistent/method", false, codeMethodNotFound},
	}

	s := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", ID: "r-1", Method: tt.method})

			if tt.wantNil {
				if resp != nil {
					t.Errorf("expected no response, got %+v", resp)
				}
				return
			}
			if resp == nil {
				t.Fatal("handleRequest returned nil")
			}
			if resp.ID != "r-1" {
				t.Errorf("ID: got %v, want r-1", resp.ID)
			}
			if tt.wantCode == 0 && resp.Error != nil {
				t.Errorf("Unexpected error: %+v", resp.Error)
			}
			if tt.wantCode != 0 && (resp.Error == nil || resp.Error.Code != tt.wantCode) {
				t.Errorf("Error: got %+v, want code %d", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestServe(t *testing.T) {
	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	}, "\n")

	var out bytes.Buffer
	if err := New(nil).Serve(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var responses []MCPResponse
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp MCPResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response line %q: %v", scanner.Text(), err)
		}
		responses = append(responses, resp)
	}

	// initialize, parse error, ping
	if len(responses) != 3 {
		t.Fatalf("got %d responses, want 3", len(responses))
	}
	if responses[0].ID != float64(1) || responses[0].Error != nil {
		t.Errorf("initialize response: %+v", responses[0])
	}
	if responses[1].Error == nil || responses[1].Error.Code != codeParseError {
		t.Errorf("parse error response: %+v", responses[1])
	}
	if responses[2].ID != float64(2) || responses[2].Error != nil {
		t.Errorf("ping response: %+v", responses[2])
	}
}

func TestServe_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(nil).Serve(ctx, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n"), &out)
	if err != context.Canceled {
		t.Errorf("Serve error: got %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("no response expected after cancellation, got %q", out.String())
	}
}
