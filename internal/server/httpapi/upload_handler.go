package httpapi

import (
	"errors"
	"io"
	"net/http"
	"path"
	"regexp"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/labstack/echo/v4"
)

const maxUploadSize = 5 << 20

var folderPattern = regexp.MustCompile(`^[a-z0-9_-]{0,32}$`)

func (h *handler) uploadImage(c echo.Context) error {
	folder := c.FormValue("folder")
	if !folderPattern.MatchString(folder) {
		return newAPIError(http.StatusBadRequest, common.CodeValidation, "folder must be lowercase letters, digits, - or _")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return newAPIError(http.StatusBadRequest, common.CodeValidation, "file is required")
	}
	if fh.Size > maxUploadSize {
		return newAPIError(http.StatusRequestEntityTooLarge, common.CodeValidation, "file is larger than 5 MiB")
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		return err
	}
	if len(data) > maxUploadSize {
		return newAPIError(http.StatusRequestEntityTooLarge, common.CodeValidation, "file is larger than 5 MiB")
	}

	res := h.fleet.SaveUpload(folder, path.Base(fh.Filename), data)
	res.URL = c.Scheme() + "://" + c.Request().Host + h.basePath + "/uploads/" + res.Key
	h.log.Info(c.Request().Context(), "file uploaded", "key", res.Key, "size", res.Size, "by", userID(c))
	return respond(c, http.StatusCreated, res)
}

func (h *handler) serveUpload(c echo.Context) error {
	data, err := h.fleet.Upload(c.Param("*"))
	if errors.Is(err, common.ErrorNotFound) {
		return newAPIError(http.StatusNotFound, common.CodeNotFound, "File not found")
	}
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, http.DetectContentType(data), data)
}
