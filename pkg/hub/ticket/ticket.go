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

// Package ticket issues and redeems the short-lived tokens that bind a
// bulk-plane HTTP transfer to a control-plane request.
//
// Tokens are 64 random alphanumeric characters and are the only access
// control on the bulk plane. Upload tickets are single use and expire
// after 30 seconds; download tickets may be redeemed repeatedly until
// they expire after 30 minutes.
package ticket

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/jellydator/ttlcache/v2"
	"github.com/pkg/errors"

	"github.com/extensionhub/hub/pkg/errtypes"
)

const (
	tokenLength   = 64
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultUploadTTL is how long an issued upload token stays redeemable.
	DefaultUploadTTL = 30 * time.Second
	// DefaultDownloadTTL is how long an issued download token stays redeemable.
	DefaultDownloadTTL = 30 * time.Minute
)

// PostExtract asks the bulk facade to extract the bundle right after a
// successful upload.
type PostExtract struct {
	TargetDir string
	Overwrite bool
}

// Upload is the record behind an upload token.
type Upload struct {
	Hash        string
	PostExtract *PostExtract
	IssuedAt    time.Time
}

// Download is the record behind a download token.
type Download struct {
	Hash     string
	IssuedAt time.Time
}

// Option customizes a Registry.
type Option func(*Registry)

// WithUploadTTL overrides the upload token lifetime. Used by tests.
func WithUploadTTL(d time.Duration) Option {
	return func(r *Registry) { r.uploadTTL = d }
}

// WithDownloadTTL overrides the download token lifetime. Used by tests.
func WithDownloadTTL(d time.Duration) Option {
	return func(r *Registry) { r.downloadTTL = d }
}

// Registry keeps the two independent token maps. Expiry is enforced by
// the underlying TTL caches: an entry disappears when its timer fires,
// whether or not it was ever redeemed.
type Registry struct {
	uploads   *ttlcache.Cache
	downloads *ttlcache.Cache

	uploadTTL   time.Duration
	downloadTTL time.Duration
}

// NewRegistry returns a ready registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		uploads:     ttlcache.NewCache(),
		downloads:   ttlcache.NewCache(),
		uploadTTL:   DefaultUploadTTL,
		downloadTTL: DefaultDownloadTTL,
	}
	for _, o := range opts {
		o(r)
	}
	// redeeming a token must not push its expiry out
	r.uploads.SkipTTLExtensionOnHit(true)
	r.downloads.SkipTTLExtensionOnHit(true)
	return r
}

// IssueUpload registers an upload ticket and returns its token.
func (r *Registry) IssueUpload(u Upload) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	u.IssuedAt = time.Now()
	if err := r.uploads.SetWithTTL(token, u, r.uploadTTL); err != nil {
		return "", errors.Wrap(err, "ticket: error storing upload ticket")
	}
	return token, nil
}

// IssueDownload registers a download ticket and returns its token.
func (r *Registry) IssueDownload(d Download) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	d.IssuedAt = time.Now()
	if err := r.downloads.SetWithTTL(token, d, r.downloadTTL); err != nil {
		return "", errors.Wrap(err, "ticket: error storing download ticket")
	}
	return token, nil
}

// TakeUpload redeems an upload token. The ticket is removed: a second
// redeem of the same token fails with ResourceNotFound.
func (r *Registry) TakeUpload(token string) (Upload, error) {
	v, err := r.uploads.Get(token)
	if err != nil {
		return Upload{}, errtypes.ResourceNotFound(token)
	}
	r.uploads.Remove(token)
	return v.(Upload), nil
}

// PeekDownload redeems a download token without consuming it.
func (r *Registry) PeekDownload(token string) (Download, error) {
	v, err := r.downloads.Get(token)
	if err != nil {
		return Download{}, errtypes.ResourceNotFound(token)
	}
	return v.(Download), nil
}

// Close releases the expiry timers.
func (r *Registry) Close() error {
	r.uploads.Close()
	r.downloads.Close()
	return nil
}

func newToken() (string, error) {
	max := big.NewInt(int64(len(tokenAlphabet)))
	b := make([]byte, tokenLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, "ticket: error reading randomness")
		}
		b[i] = tokenAlphabet[n.Int64()]
	}
	return string(b), nil
}
