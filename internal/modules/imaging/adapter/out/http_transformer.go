package out

import (
	"bytes"
	"context"

	"lifeos/internal/modules/imaging/domain"
	imagingout "lifeos/internal/modules/imaging/port/out"
	"lifeos/internal/platform/httpapi"
)

type HTTPTransformer struct {
	client *httpapi.Client
}

func NewHTTPTransformer(client *httpapi.Client) imagingout.Transformer {
	return &HTTPTransformer{client: client}
}

type resultJSON struct {
	Result string `json:"result"`
}

func (t *HTTPTransformer) Magic(ctx context.Context, img domain.Image, mode domain.Mode) (domain.Result, error) {
	var out resultJSON
	file := httpapi.File{Field: "file", Name: img.Name, Data: bytes.NewReader(img.Data)}
	if err := t.client.Upload(ctx, "/banana/magic", map[string]string{"mode": string(mode)}, file, &out); err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Text: out.Result}, nil
}

func (t *HTTPTransformer) FaceSwap(ctx context.Context, img domain.Image) (domain.Result, error) {
	var out resultJSON
	file := httpapi.File{Field: "file", Name: img.Name, Data: bytes.NewReader(img.Data)}
	if err := t.client.Upload(ctx, "/banana/faceswap", nil, file, &out); err != nil {
		return domain.Result{}, err
	}
	return domain.Result{Text: out.Result}, nil
}
