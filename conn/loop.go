// Copyright 2026 The kvresp Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package conn

import (
	"errors"
	"io"
	"net"

	"github.com/google/uuid"
	"github.com/valyala/bytebufferpool"

	"github.com/kvresp/kvresp/command"
	"github.com/kvresp/kvresp/common"
	"github.com/kvresp/kvresp/internal/bufbytes"
	"github.com/kvresp/kvresp/internal/rescue"
	"github.com/kvresp/kvresp/logger"
	"github.com/kvresp/kvresp/resp"
	"github.com/kvresp/kvresp/store"
)

// invalidFramePreviewSize bounds how much of a malformed request gets
// logged: a huge or adversarial payload must not turn one bad frame into
// a multi-megabyte log line.
const invalidFramePreviewSize = 64

// Handle owns one accepted connection end to end: it reads bytes, frames
// and decodes as many complete requests as are currently buffered,
// dispatches each against backend, and writes replies back, until EOF or
// a framing error that forces a close. It always closes c before
// returning and never lets a panic escape past this connection: one bad
// connection must not affect any other.
func Handle(c net.Conn, backend *store.Backend) {
	defer rescue.HandleCrash()

	id := uuid.NewString()
	defer func() {
		if err := c.Close(); err != nil {
			logger.Debugf("conn %s: close: %v", id, err)
		}
	}()
	logger.Infof("conn %s: accepted from %s", id, c.RemoteAddr())

	buf := NewBuffer()
	chunk := make([]byte, common.ReadChunkSize)

	for {
		if !drain(c, id, buf, backend) {
			return
		}

		n, err := c.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Debugf("conn %s: read: %v", id, err)
			}
			return
		}
	}
}

// drain decodes and executes every complete request currently sitting in
// buf, batching their replies into one write. It returns false when the
// connection must close (a framing error, or a failed write).
func drain(c net.Conn, id string, buf *Buffer, backend *store.Backend) bool {
	out := bytebufferpool.Get()
	defer bytebufferpool.Put(out)

	for {
		n, err := resp.ExpectLength(buf.Bytes())
		if err != nil {
			if resp.IsNotCompleted(err) {
				break
			}
			logger.Warnf("conn %s: invalid frame: %v (near %q)", id, err, previewOf(buf.Bytes()))
			out.Write(resp.Encode(resp.SimpleError(err.Error())))
			flush(c, out)
			return false
		}

		frame, consumed, err := resp.Decode(buf.Bytes()[:n])
		if err != nil {
			logger.Warnf("conn %s: decode disagreed with length scan: %v (near %q)", id, err, previewOf(buf.Bytes()[:n]))
			out.Write(resp.Encode(resp.SimpleError(err.Error())))
			flush(c, out)
			return false
		}
		buf.Discard(consumed)

		out.Write(resp.Encode(dispatch(frame, backend)))
	}

	if out.Len() > 0 {
		if err := flush(c, out); err != nil {
			logger.Debugf("conn %s: write: %v", id, err)
			return false
		}
	}
	return true
}

func flush(c net.Conn, out *bytebufferpool.ByteBuffer) error {
	_, err := c.Write(out.Bytes())
	return err
}

// previewOf captures a bounded prefix of a malformed request for logging.
func previewOf(b []byte) string {
	p := bufbytes.New(invalidFramePreviewSize)
	p.Write(b)
	return p.Text()
}

// dispatch turns a decoded frame into a reply frame. A command-level
// error (unknown verb, bad arity, wrong argument shape) is reported
// in-band as a SimpleError; unlike a framing error it never closes the
// connection.
func dispatch(frame resp.Frame, backend *store.Backend) resp.Frame {
	cmd, err := command.Parse(frame)
	if err != nil {
		return resp.SimpleError(err.Error())
	}
	return command.Execute(cmd, backend)
}
