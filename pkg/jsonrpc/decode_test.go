package jsonrpc_test

import (
	"testing"

	"github.com/lspwire/lspwire/pkg/jsonrpc"
)

func TestDecodeMessageClassification(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "success response",
			body: `{"jsonrpc":"2.0","id":1,"result":{"capabilities":{}}}`,
			want: "output",
		},
		{
			name: "failure response",
			body: `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"method not found"}}`,
			want: "output",
		},
		{
			name: "success response with null result",
			body: `{"id":7,"result":null}`,
			want: "output",
		},
		{
			name: "server request",
			body: `{"jsonrpc":"2.0","id":"cfg-1","method":"workspace/configuration","params":{}}`,
			want: "request",
		},
		{
			name: "server notification",
			body: `{"jsonrpc":"2.0","method":"window/logMessage","params":{"type":3,"message":"hi"}}`,
			want: "notification",
		},
		{
			name:    "neither method nor id",
			body:    `{"params":{}}`,
			wantErr: true,
		},
		{
			name:    "response with both result and error",
			body:    `{"id":1,"result":1,"error":{"code":1,"message":"x"}}`,
			wantErr: true,
		},
		{
			name:    "response with neither result nor error",
			body:    `{"id":1}`,
			wantErr: true,
		},
		{
			name:    "not an object",
			body:    `[1,2,3]`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			body:    `{"id":1,"result":`,
			wantErr: true,
		},
		{
			name:    "empty method",
			body:    `{"method":""}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := jsonrpc.DecodeMessage([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DecodeMessage(%q) = %T, want error", tt.body, msg)
				}

				return
			}
			if err != nil {
				t.Fatalf("DecodeMessage(%q) error: %v", tt.body, err)
			}

			var got string
			switch msg.(type) {
			case *jsonrpc.Output:
				got = "output"
			case *jsonrpc.MethodCall:
				got = "request"
			case *jsonrpc.Notification:
				got = "notification"
			default:
				t.Fatalf("DecodeMessage(%q) = unexpected type %T", tt.body, msg)
			}
			if got != tt.want {
				t.Errorf("DecodeMessage(%q) = %s, want %s", tt.body, got, tt.want)
			}
		})
	}
}

func TestDecodeOutputFields(t *testing.T) {
	msg, err := jsonrpc.DecodeMessage(
		[]byte(`{"id":3,"error":{"code":-32800,"message":"cancelled","data":{"retry":true}}}`),
	)
	if err != nil {
		t.Fatalf("DecodeMessage error: %v", err)
	}
	out, ok := msg.(*jsonrpc.Output)
	if !ok {
		t.Fatalf("DecodeMessage = %T, want *Output", msg)
	}
	if out.ID != jsonrpc.NewIntID(3) {
		t.Errorf("id = %s, want #3", out.ID)
	}
	if out.Error == nil {
		t.Fatal("error object missing")
	}
	if out.Error.Code != -32800 || out.Error.Message != "cancelled" {
		t.Errorf("error = %v, want code -32800 message %q", out.Error, "cancelled")
	}
	if string(out.Error.Data) != `{"retry":true}` {
		t.Errorf("error data = %s", out.Error.Data)
	}
}

func TestDecodeMethodCallFields(t *testing.T) {
	msg, err := jsonrpc.DecodeMessage(
		[]byte(`{"id":"r-9","method":"client/registerCapability","params":{"registrations":[]}}`),
	)
	if err != nil {
		t.Fatalf("DecodeMessage error: %v", err)
	}
	call, ok := msg.(*jsonrpc.MethodCall)
	if !ok {
		t.Fatalf("DecodeMessage = %T, want *MethodCall", msg)
	}
	if call.ID != jsonrpc.NewNamedID("r-9") {
		t.Errorf("id = %s, want \"r-9\"", call.ID)
	}
	if call.Method != "client/registerCapability" {
		t.Errorf("method = %q", call.Method)
	}
	if string(call.Params) != `{"registrations":[]}` {
		t.Errorf("params = %s", call.Params)
	}
}
