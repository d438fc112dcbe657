package jsonrpc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

// DecodeMessage classifies and decodes one message body. Decoding is
// two-phase: a body with no "method" key must be an Output (id plus
// exactly one of result/error); a body with a "method" key is a Call,
// a MethodCall when "id" is present and a Notification otherwise. Any
// other shape is a decode error.
func DecodeMessage(data []byte) (Message, error) {
	if _, dt, _, err := jsonparser.Get(data); err != nil || dt != jsonparser.Object {
		return nil, fmt.Errorf("message body is not a JSON object")
	}

	_, _, _, methodErr := jsonparser.Get(data, "method")
	if errors.Is(methodErr, jsonparser.KeyPathNotFoundError) {
		return decodeOutput(data)
	}

	return decodeCall(data)
}

func decodeOutput(data []byte) (Message, error) {
	if !hasKey(data, "id") {
		return nil, fmt.Errorf("message has neither method nor id")
	}
	hasResult := hasKey(data, "result")
	hasError := hasKey(data, "error")
	if hasResult == hasError {
		return nil, fmt.Errorf("response must carry exactly one of result and error")
	}

	var out Output
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &out, nil
}

func decodeCall(data []byte) (Message, error) {
	if hasKey(data, "id") {
		var call MethodCall
		if err := json.Unmarshal(data, &call); err != nil {
			return nil, fmt.Errorf("decode server request: %w", err)
		}
		if call.Method == "" {
			return nil, fmt.Errorf("server request has an empty method")
		}

		return &call, nil
	}

	var note Notification
	if err := json.Unmarshal(data, &note); err != nil {
		return nil, fmt.Errorf("decode server notification: %w", err)
	}
	if note.Method == "" {
		return nil, fmt.Errorf("server notification has an empty method")
	}

	return &note, nil
}

func hasKey(data []byte, key string) bool {
	_, _, _, err := jsonparser.Get(data, key)

	return err == nil
}
