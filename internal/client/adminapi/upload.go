package adminapi

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/dto"
	"github.com/dmitrijs2005/fleetdesk/internal/netx"
)

type UploadService struct{ base }

// Image uploads an image into folder and returns where it is served from.
func (s *UploadService) Image(ctx context.Context, folder, filename string, content io.Reader) (dto.UploadResult, error) {
	if filename == "" || content == nil {
		return dto.UploadResult{}, fmt.Errorf("%w: file is required", common.ErrorValidation)
	}
	mp := netx.NewMultipart().AddFile("file", filename, content)
	if folder != "" {
		mp.AddField("folder", folder)
	}

	var out dto.UploadResult
	err := s.c.Post(ctx, "/upload/image", mp, nil, &out)
	return out, err
}
