package echoapi

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eldad2003/pharmverse-edu-hub/core/material"
)

// uploadFormField is the multipart field holding the selected files. Only their names are kept.
const uploadFormField = "files"

type materialApi struct {
	svc *material.Service
}

func registerMaterialAPI(g *echo.Group, authed []echo.MiddlewareFunc, deps *Deps) {
	api := materialApi{svc: deps.MaterialSvc}

	fg := g.Group("/files", authed...)
	fg.POST("", api.upload, adminMiddleware())
	fg.GET("", api.load, studentMiddleware())
	fg.GET("/:name/download", api.download, studentMiddleware())
}

type UploadRequest struct {
	Names []string `json:"names"`
}

// Bind reads file names from a multipart form, or from a JSON UploadRequest.
func (ur *UploadRequest) Bind(ctx echo.Context) error {
	if strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		form, err := ctx.MultipartForm()
		if err != nil {
			return errors.Wrap(err, "parsing multipart form")
		}
		for _, fh := range form.File[uploadFormField] {
			ur.Names = append(ur.Names, fh.Filename)
		}
		return nil
	}
	return ctx.Bind(ur)
}

// Handlers

func (api *materialApi) upload(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}
	var data UploadRequest
	if err = data.Bind(ctx); err != nil {
		return errors.Wrap(err, "binding to UploadRequest")
	}

	res, err := api.svc.RecordUpload(ctx.Request().Context(), sess, data.Names)
	if err != nil {
		return errors.Wrap(err, "recording upload")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *materialApi) load(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}
	files, err := api.svc.Load(ctx.Request().Context(), sess)
	if err != nil {
		return errors.Wrap(err, "loading files")
	}
	return ctx.JSON(http.StatusOK, files)
}

func (api *materialApi) download(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}
	name, err := pathParam(ctx, "name")
	if err != nil {
		return err
	}
	ack, err := api.svc.Download(ctx.Request().Context(), sess, name)
	if err != nil {
		return errors.Wrap(err, "downloading file")
	}
	return ctx.JSON(http.StatusOK, ack)
}

// pathParam returns a decoded path parameter. echo matches on URL.RawPath when it is set,
// leaving params escaped; otherwise they come from the already decoded URL.Path.
func pathParam(ctx echo.Context, name string) (string, error) {
	value := ctx.Param(name)
	if ctx.Request().URL.RawPath == "" {
		return value, nil
	}
	unescaped, err := url.PathUnescape(value)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "malformed "+name)
	}
	return unescaped, nil
}
