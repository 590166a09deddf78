package usecase_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	imagingout "lifeos/internal/modules/imaging/adapter/out"
	"lifeos/internal/modules/imaging/dto"
	imagingin "lifeos/internal/modules/imaging/port/in"
	"lifeos/internal/modules/imaging/service"
	"lifeos/internal/modules/imaging/usecase"
	apperrors "lifeos/internal/platform/errors"
	"lifeos/internal/platform/httpapi/apitest"
)

func newImaging(srv *apitest.Server) imagingin.Usecase {
	files := imagingout.NewLocalFiles()
	return usecase.NewInteractor(service.NewImagingService(files, imagingout.NewHTTPTransformer(srv.Client()), files))
}

func writeImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "selfie.jpg")
	require.NoError(t, os.WriteFile(path, []byte("\xff\xd8jpeg-bytes"), 0o644))
	return path
}

func TestMagicUploadsMultipart(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.Handle(http.MethodPost, "/banana/magic", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		apitest.Write(w, http.StatusOK, map[string]string{"result": r.FormValue("mode") + ":" + hdr.Filename})
	})

	out, err := newImaging(srv).Magic(context.Background(), dto.TransformInput{Path: writeImage(t), Mode: "caption"})
	require.NoError(t, err)
	require.Equal(t, "caption:selfie.jpg", out.Result)
	require.True(t, strings.HasPrefix(srv.Calls()[0].Header.Get("Content-Type"), "multipart/form-data; boundary="))
}

func TestMagicRejectsUnknownModeWithoutUpload(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	_, err := newImaging(srv).Magic(context.Background(), dto.TransformInput{Path: writeImage(t), Mode: "anime"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	require.Empty(t, srv.Calls())
}

func TestMissingImageFailsBeforeUpload(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	uc := newImaging(srv)
	_, err := uc.FaceSwap(context.Background(), dto.TransformInput{Path: ""})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.FaceSwap(context.Background(), dto.TransformInput{Path: filepath.Join(t.TempDir(), "nope.png")})
	require.Error(t, err)
	require.Empty(t, srv.Calls())
}

func TestFaceSwapSavesDataURI(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/banana/faceswap", http.StatusOK, map[string]string{"result": "data:image/png;base64,cG5n"})
	out := filepath.Join(t.TempDir(), "res", "swap.png")

	res, err := newImaging(srv).FaceSwap(context.Background(), dto.TransformInput{Path: writeImage(t), Out: out})
	require.NoError(t, err)
	require.True(t, res.DataURI)
	require.Equal(t, out, res.SavedTo)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "png", string(b))
}

func TestUploadErrorSurfacesBody(t *testing.T) {
	t.Parallel()
	srv := apitest.New(t)
	srv.Fail(http.MethodPost, "/banana/magic", http.StatusServiceUnavailable, `{"detail":"Google API Key missing"}`)
	_, err := newImaging(srv).Magic(context.Background(), dto.TransformInput{Path: writeImage(t)})
	require.EqualError(t, err, `magic: {"detail":"Google API Key missing"}`)
}
