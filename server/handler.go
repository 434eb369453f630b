package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/catalog"
	"github.com/gogpu/draft/config"
	"github.com/gogpu/draft/part"
	"github.com/gogpu/draft/recording"
)

type handler struct {
	settings config.Settings
	metrics  *Metrics
}

// errorBody is the JSON body of a failed request. Kind and Field name the
// shape and document field of a validation error.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
}

func (h *handler) draw(c *gin.Context) {
	name := c.Param("backend")
	format, err := recording.Lookup(name)
	if err != nil {
		c.JSON(http.StatusNotFound, errorBody{Error: err.Error()})
		return
	}

	body := c.Request.Body
	if limit := h.settings.Server.MaxBodyBytes; limit > 0 {
		body = http.MaxBytesReader(c.Writer, body, limit)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorBody{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	start := time.Now()
	doc, err := config.Parse(data)
	if err != nil {
		h.fail(c, "", err)
		return
	}
	kind := doc.Spec.Kind()
	res, err := catalog.Generate(doc)
	if err != nil {
		h.fail(c, kind, err)
		return
	}
	h.metrics.RecordDropped(res.Skipped)

	backend := format.New()
	out, ok := backend.(recording.WriterBackend)
	if !ok {
		c.JSON(http.StatusNotImplemented, errorBody{Error: "backend " + name + " cannot stream its output"})
		return
	}
	var buf bytes.Buffer
	err = res.Playback(backend)
	if err == nil {
		_, err = out.WriteTo(&buf)
	}
	if err != nil {
		h.metrics.RecordGeneration(kind, "error", res.Len(), time.Since(start))
		draft.ComponentLogger("server").Error("playback failed", "backend", name, "err", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	h.metrics.RecordGeneration(kind, "ok", res.Len(), time.Since(start))

	mediaType := format.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	c.Data(http.StatusOK, mediaType, buf.Bytes())
}

// fail answers a document or validation error with 400.
func (h *handler) fail(c *gin.Context, kind part.Kind, err error) {
	body := errorBody{Error: err.Error()}
	var (
		missing  *part.MissingParameterError
		invalid  *part.InvalidParameterError
		mismatch *part.DimensionMismatchError
		shape    *part.UnsupportedShapeError
	)
	switch {
	case errors.As(err, &missing):
		kind, body.Field = missing.Kind, missing.Field
	case errors.As(err, &invalid):
		kind, body.Field = invalid.Kind, invalid.Field
	case errors.As(err, &mismatch):
		kind, body.Field = mismatch.Kind, mismatch.FieldA
	case errors.As(err, &shape):
		body.Field = "shape"
	}
	body.Kind = string(kind)

	label := string(kind)
	if label == "" {
		label = "unknown"
	}
	h.metrics.Generations.WithLabelValues(label, "invalid").Inc()
	c.JSON(http.StatusBadRequest, body)
}

func (h *handler) backends(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"backends": recording.Formats()})
}

type shapeInfo struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Assembly bool   `json:"assembly"`
}

func (h *handler) shapes(c *gin.Context) {
	kinds := catalog.Kinds()
	out := make([]shapeInfo, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, shapeInfo{Kind: string(k), Title: catalog.Title(k), Assembly: k.IsAssembly()})
	}
	c.JSON(http.StatusOK, gin.H{"shapes": out})
}
