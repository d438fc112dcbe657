package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/lspwire/lspwire/pkg/jsonrpc"
	"github.com/lspwire/lspwire/pkg/rpcerrs"
)

const contentLengthHeader = "Content-Length"

// frameReader decodes Content-Length framed messages from one stream.
// The body buffer is reused across reads; decoded messages never alias
// it.
type frameReader struct {
	r      *bufio.Reader
	logger *zap.Logger
	body   []byte
}

func newFrameReader(r io.Reader, logger *zap.Logger) *frameReader {
	return &frameReader{r: bufio.NewReader(r), logger: logger}
}

// read decodes one frame. A clean end-of-stream yields StreamClosed;
// framing and shape failures yield MalformedFrame. Header lines with no
// ": " delimiter are skipped: some servers mix logging into the message
// stream.
func (fr *frameReader) read() (jsonrpc.Message, error) {
	contentLength := -1
	for {
		line, err := fr.r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && line == "" {
				return nil, rpcerrs.NewStreamClosed()
			}

			return nil, rpcerrs.NewFrameError("read header line", err)
		}

		if line == "\r\n" || line == "\n" {
			break
		}

		key, value, found := strings.Cut(strings.TrimSpace(line), ": ")
		if !found {
			fr.logger.Warn("skipping stray header line", zap.String("line", strings.TrimSpace(line)))

			continue
		}
		if key != contentLengthHeader {
			continue
		}

		contentLength, err = strconv.Atoi(value)
		if err != nil {
			return nil, rpcerrs.NewFrameError("invalid content length", err)
		}
	}

	if contentLength < 0 {
		return nil, rpcerrs.NewFrameError("missing content length header", nil)
	}

	if cap(fr.body) < contentLength {
		fr.body = make([]byte, contentLength)
	}
	fr.body = fr.body[:contentLength]
	if _, err := io.ReadFull(fr.r, fr.body); err != nil {
		return nil, rpcerrs.NewFrameError("truncated message body", err)
	}
	if !utf8.Valid(fr.body) {
		return nil, rpcerrs.NewFrameError("message body is not valid utf-8", nil)
	}

	fr.logger.Debug("<-", zap.ByteString("body", fr.body))

	msg, err := jsonrpc.DecodeMessage(fr.body)
	if err != nil {
		return nil, rpcerrs.NewFrameError("decode message body", err)
	}

	return msg, nil
}

// frameWriter encodes Content-Length framed messages onto one stream.
// All writes for a transport are issued by the single writer goroutine,
// so bodies are never interleaved.
type frameWriter struct {
	w      *bufio.Writer
	logger *zap.Logger
}

func newFrameWriter(w io.Writer, logger *zap.Logger) *frameWriter {
	return &frameWriter{w: bufio.NewWriter(w), logger: logger}
}

// write frames body and flushes it to the stream.
func (fw *frameWriter) write(body []byte) error {
	fw.logger.Debug("->", zap.ByteString("body", body))

	if _, err := fmt.Fprintf(fw.w, "%s: %d\r\n\r\n", contentLengthHeader, len(body)); err != nil {
		return err
	}
	if _, err := fw.w.Write(body); err != nil {
		return err
	}

	return fw.w.Flush()
}
