package printing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		req      *RenderRequest
		wantCode ErrorCode
	}{
		{name: "nil request", wantCode: ErrCodeInvalidHTML},
		{name: "empty HTML", req: &RenderRequest{PaperSize: PaperSizeA4}, wantCode: ErrCodeInvalidHTML},
		{name: "blank HTML", req: &RenderRequest{HTML: " \n\t", PaperSize: PaperSizeReceipt58MM}, wantCode: ErrCodeInvalidHTML},
		{name: "letter paper", req: &RenderRequest{HTML: "<p>NFC-e</p>", PaperSize: "LETTER"}, wantCode: ErrCodeInvalidPaperSize},
		{name: "receipt", req: &RenderRequest{HTML: "<p>NFC-e</p>", PaperSize: PaperSizeReceipt80MM}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, IsRenderErrorCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestPaperSize_Dimensions(t *testing.T) {
	tests := []struct {
		size          PaperSize
		width, height int
		receipt, ok   bool
	}{
		{PaperSizeA4, 210, 297, false, true},
		{PaperSizeReceipt58MM, 58, continuousHeightMM, true, true},
		{PaperSizeReceipt80MM, 80, continuousHeightMM, true, true},
		{"", 80, continuousHeightMM, false, false},
	}
	for _, tt := range tests {
		w, h := tt.size.Dimensions()
		assert.Equal(t, tt.width, w, tt.size)
		assert.Equal(t, tt.height, h, tt.size)
		assert.Equal(t, tt.receipt, tt.size.IsReceipt(), tt.size)
		assert.Equal(t, tt.ok, tt.size.IsValid(), tt.size)
	}
}

func TestRenderError(t *testing.T) {
	plain := NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	assert.Equal(t, "generated PDF is empty", plain.Error())
	assert.Nil(t, errors.Unwrap(plain))

	cause := errors.New("chrome exited")
	wrapped := fmt.Errorf("receipt 12: %w", NewRenderError(ErrCodeRenderTimeout, "render", cause))
	assert.Equal(t, "receipt 12: render: chrome exited", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, IsRenderErrorCode(wrapped, ErrCodeRenderTimeout))
	assert.False(t, IsRenderErrorCode(wrapped, ErrCodeRenderFailed))
	assert.False(t, IsRenderErrorCode(cause, ErrCodeRenderTimeout))
}
