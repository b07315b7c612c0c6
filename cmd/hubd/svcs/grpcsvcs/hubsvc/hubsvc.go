// Copyright 2018-2021 CERN
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// In applying this license, CERN does not waive the privileges and immunities
// granted to it by virtue of its status as an Intergovernmental Organization
// or submit itself to any jurisdiction.

// Package hubsvc exposes the ExtensionHub control-plane RPCs. Every
// typed error is conveyed twice: as a gRPC status category and as a
// 4-byte big-endian wire code in the x-hub-code-bin trailer.
package hubsvc

import (
	"context"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	hubv1 "github.com/extensionhub/hub/api/hub/v1"
	"github.com/extensionhub/hub/cmd/hubd/grpcserver"
	"github.com/extensionhub/hub/pkg/appctx"
	"github.com/extensionhub/hub/pkg/errtypes"
	"github.com/extensionhub/hub/pkg/hub"
	"github.com/extensionhub/hub/pkg/hub/ticket"
)

// CodeTrailer is the response trailer carrying the 4-byte big-endian
// wire code of a failed call.
const CodeTrailer = "x-hub-code-bin"

func init() {
	grpcserver.Register("hubsvc", New)
}

type service struct {
	hub *hub.Hub
}

// New creates the hub service and registers it on the gRPC server.
func New(m map[string]interface{}, ss *grpc.Server) (io.Closer, error) {
	h, err := hub.Get(m)
	if err != nil {
		return nil, err
	}

	s := &service{hub: h}
	hubv1.RegisterExtensionHubServer(ss, s)
	return s, nil
}

func (s *service) Close() error {
	return s.hub.Tickets.Close()
}

// CheckTar reports whether the bundle is stored and already extracted
// into the given directory.
func (s *service) CheckTar(ctx context.Context, req *hubv1.CheckTarRequest) (*hubv1.CheckTarResponse, error) {
	if err := s.hub.CheckTar(req.GetTarHash(), req.GetFilePath()); err != nil {
		return nil, wireError(ctx, err)
	}
	return &hubv1.CheckTarResponse{}, nil
}

// UploadTar issues an upload ticket for the announced hash.
func (s *service) UploadTar(ctx context.Context, req *hubv1.UploadTarRequest) (*hubv1.UploadTarResponse, error) {
	u := ticket.Upload{Hash: req.GetTarHash()}
	if un := req.GetUnTar(); un != nil {
		u.PostExtract = &ticket.PostExtract{
			TargetDir: un.GetTargetDir(),
			Overwrite: un.GetOverwrite(),
		}
	}

	token, err := s.hub.Tickets.IssueUpload(u)
	if err != nil {
		return nil, wireError(ctx, err)
	}

	appctx.GetLogger(ctx).Debug().Str("hash", req.GetTarHash()).Msg("upload ticket issued")
	return &hubv1.UploadTarResponse{
		Data: &hubv1.UploadTarData{UploadUrl: token},
	}, nil
}

// DownloadTar issues a download ticket for a stored bundle.
func (s *service) DownloadTar(ctx context.Context, req *hubv1.DownloadTarRequest) (*hubv1.DownloadTarResponse, error) {
	token, err := s.hub.Tickets.IssueDownload(ticket.Download{Hash: req.GetTarHash()})
	if err != nil {
		return nil, wireError(ctx, err)
	}

	appctx.GetLogger(ctx).Debug().Str("hash", req.GetTarHash()).Msg("download ticket issued")
	return &hubv1.DownloadTarResponse{
		Data: &hubv1.DownloadTarData{DownloadUrl: token},
	}, nil
}

// UnTar extracts a stored bundle into a target directory.
func (s *service) UnTar(ctx context.Context, req *hubv1.UnTarRequest) (*hubv1.UnTarResponse, error) {
	if err := s.hub.Extract(req.GetTarHash(), req.GetTargetDir(), req.GetOverwrite()); err != nil {
		return nil, wireError(ctx, err)
	}
	return &hubv1.UnTarResponse{}, nil
}

// ReplaceText runs a literal substitution over an extracted tree.
func (s *service) ReplaceText(ctx context.Context, req *hubv1.ReplaceTextRequest) (*hubv1.ReplaceTextResponse, error) {
	if err := s.hub.ReplaceText(req.GetTargetDir(), req.GetOldText(), req.GetNewText(), req.GetSuffix()); err != nil {
		return nil, wireError(ctx, err)
	}
	return &hubv1.ReplaceTextResponse{}, nil
}

// ClearTarDir is reserved.
func (s *service) ClearTarDir(ctx context.Context, req *hubv1.ClearTarDirRequest) (*hubv1.ClearTarDirResponse, error) {
	return &hubv1.ClearTarDirResponse{}, nil
}

// ClearDir is reserved.
func (s *service) ClearDir(ctx context.Context, req *hubv1.ClearDirRequest) (*hubv1.ClearDirResponse, error) {
	return &hubv1.ClearDirResponse{}, nil
}

// wireError sets the code trailer and maps the typed error to its
// status category.
func wireError(ctx context.Context, err error) error {
	if terr := grpc.SetTrailer(ctx, metadata.Pairs(CodeTrailer, string(errtypes.CodeBytes(err)))); terr != nil {
		appctx.GetLogger(ctx).Error().Err(terr).Msg("error setting code trailer")
	}
	return status.Error(statusCode(err), err.Error())
}

func statusCode(err error) codes.Code {
	switch err.(type) {
	case errtypes.IsNotFound:
		return codes.NotFound
	case errtypes.IsInvalidArgument:
		return codes.InvalidArgument
	case errtypes.IsNotSupported:
		return codes.Unimplemented
	default:
		return codes.Internal
	}
}
