package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tidwall/jsonc"

	"github.com/Fuabioo/gzjson"
)

// handleRead implements gzjson_read: returns the document stored in a
// gzip-compressed JSON file.
func (s *Server) handleRead(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return errorResult("INVALID_PARAMS", "path is required"), nil
	}

	pretty := request.GetBool("pretty", false)

	doc, err := s.docs.Read(path)
	if err != nil {
		return mcpErrorResult(err), nil
	}

	text, err := renderDocument(doc, pretty)
	if err != nil {
		return errorResult("INTERNAL_ERROR", err.Error()), nil
	}

	return mcp.NewToolResultText(text), nil
}

// handleWrite implements gzjson_write: stores a JSON document as a
// gzip-compressed file.
func (s *Server) handleWrite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return errorResult("INVALID_PARAMS", "path is required"), nil
	}

	content, err := request.RequireString("content")
	if err != nil {
		return errorResult("INVALID_PARAMS", "content is required"), nil
	}

	raw := []byte(content)
	if request.GetBool("jsonc", false) {
		raw = jsonc.ToJSON(raw)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return mcpErrorResult(gzjson.JSONInvalid("", err)), nil
	}

	if err := s.codec.Write(path, doc); err != nil {
		return mcpErrorResult(err), nil
	}
	s.docs.Invalidate(path)

	response := map[string]interface{}{
		"written": true,
		"path":    path,
	}
	if info, err := os.Stat(path); err == nil {
		response["compressed_bytes"] = info.Size()
	}

	return jsonResult(response), nil
}

// handleCheck implements gzjson_check: validates a file and reports sizes.
// Unlike the other tools it reports invalid files as data, not as an error
// result, so agents can inspect the failure code.
func (s *Server) handleCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return errorResult("INVALID_PARAMS", "path is required"), nil
	}

	response := map[string]interface{}{
		"path":  path,
		"valid": false,
	}

	info, statErr := os.Stat(path)
	var checkErr error
	switch {
	case os.IsNotExist(statErr):
		checkErr = gzjson.FileNotFound(path)
	case statErr != nil:
		checkErr = gzjson.ReadFailed(path, statErr)
	default:
		response["compressed_bytes"] = info.Size()
		if n, err := decompressedSize(path); err == nil {
			response["decompressed_bytes"] = n
		}
		if _, err := s.docs.Read(path); err != nil {
			checkErr = err
		}
	}

	if checkErr != nil {
		response["code"] = gzjson.ErrorCode(checkErr)
		response["error"] = checkErr.Error()
	} else {
		response["valid"] = true
	}

	return jsonResult(response), nil
}

// renderDocument serializes a document the way the codec stores it,
// optionally indented.
func renderDocument(doc any, pretty bool) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// decompressedSize counts the bytes the gzip stream at path expands to.
func decompressedSize(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return 0, err
	}
	defer zr.Close()

	return io.Copy(io.Discard, zr)
}

// mcpErrorResult converts a gzjson error into an MCP error result.
func mcpErrorResult(err error) *mcp.CallToolResult {
	code := gzjson.ErrorCode(err)
	if code == "" {
		code = "INTERNAL_ERROR"
	}

	return errorResult(code, err.Error())
}

// errorResult creates an MCP error result.
func errorResult(code, message string) *mcp.CallToolResult {
	errorData := map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}

	jsonBytes, err := json.Marshal(errorData)
	if err != nil {
		// Fallback to simple text
		return mcp.NewToolResultText(fmt.Sprintf("Error: %s - %s", code, message))
	}

	return mcp.NewToolResultText(string(jsonBytes))
}

// jsonResult creates an MCP success result from a JSON-serializable object.
func jsonResult(data interface{}) *mcp.CallToolResult {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return errorResult("INTERNAL_ERROR", fmt.Sprintf("failed to marshal response: %s", err))
	}

	return mcp.NewToolResultText(string(jsonBytes))
}
