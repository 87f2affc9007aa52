/*
Copyright © 2026 the foamplot authors.
This file is part of foamplot.

foamplot is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

foamplot is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with foamplot.  If not, see <http://www.gnu.org/licenses/>.
*/

package cloud

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
	"gocloud.dev/blob"
)

// Output is the destination of an output file, which may be either a
// local path or a blob location. Blob outputs are written to a
// temporary local file first and uploaded by Publish.
type Output struct {
	// Location is the requested destination.
	Location string

	// Log receives upload progress. If nil, the standard logger is used.
	Log logrus.FieldLogger

	local string
	dir   string
}

// NewOutput prepares an output at location. If location is a blob, a
// temporary directory is created to hold the file until it is
// published.
func NewOutput(location string) (*Output, error) {
	o := &Output{Location: location, local: location}
	if !IsBlob(location) {
		return o, nil
	}
	var err error
	o.dir, err = os.MkdirTemp("", "foamplot")
	if err != nil {
		return nil, fmt.Errorf("cloud: creating temporary output directory: %v", err)
	}
	o.local = filepath.Join(o.dir, filepath.Base(location))
	return o, nil
}

// Local returns the local path the output should be written to.
func (o *Output) Local() string { return o.local }

func (o *Output) logger() logrus.FieldLogger {
	if o.Log == nil {
		return logrus.StandardLogger()
	}
	return o.Log
}

// Publish uploads the output to blob storage, if that is where it is
// destined. It does nothing for local outputs. Failed uploads are
// retried with exponential backoff until ctx is done.
func (o *Output) Publish(ctx context.Context) error {
	if o.dir == "" {
		return nil
	}
	log := o.logger().WithField("location", o.Location)
	err := backoff.RetryNotify(
		func() error {
			return upload(ctx, o.local, o.Location)
		},
		backoff.WithContext(backoff.NewExponentialBackOff(), ctx),
		func(err error, d time.Duration) {
			log.WithError(err).Warnf("upload failed: retrying in %v", d)
		},
	)
	if err != nil {
		return err
	}
	log.Info("uploaded output")
	return nil
}

// Close removes the temporary copy of a blob output.
func (o *Output) Close() error {
	if o.dir == "" {
		return nil
	}
	return os.RemoveAll(o.dir)
}

// upload copies the local file to the blob location.
func upload(ctx context.Context, local, location string) error {
	bucketName, key, err := Split(location)
	if err != nil {
		return err
	}
	r, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("cloud: opening file '%s' for upload: %v", local, err)
	}
	defer r.Close()
	bucket, err := OpenBucket(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("cloud: opening bucket to upload file '%s': %v", location, err)
	}
	defer bucket.Close()
	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{})
	if err != nil {
		return fmt.Errorf("cloud: opening writer to upload file '%s': %v", location, err)
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("cloud: uploading file '%s' to '%s': %v", local, location, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("cloud: writing blob '%s': %v", location, err)
	}
	return nil
}
