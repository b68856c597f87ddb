package s3service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"submission-routing-engine/internal/models"
	s3service "submission-routing-engine/internal/services/s3"
)

type fakeObjects struct {
	objects     map[string][]byte
	contentType map[string]string
	err         error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, contentType: map[string]string{}}
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.contentType[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

type fakePresigner struct{}

func (fakePresigner) PresignGetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{URL: "https://example.test/" + aws.ToString(in.Key) + "?get"}, nil
}

func (fakePresigner) PresignPutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{URL: "https://example.test/" + aws.ToString(in.Key) + "?put"}, nil
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "transcripts/call.txt", s3service.TranscriptKey("call.txt"))
	assert.Equal(t, "transcripts/call.txt", s3service.TranscriptKey("../../call.txt"))
	assert.Equal(t, "submissions/abc/package.json", s3service.PackageKey("abc"))
}

func TestDownloadTranscript(t *testing.T) {
	objects := newFakeObjects()
	objects.objects["transcripts/call.txt"] = []byte("  Broker: Hi there\n")
	objects.objects["transcripts/blank.txt"] = []byte(" \n ")
	svc := s3service.NewWithClient(objects, nil, "bucket")

	transcript, err := svc.DownloadTranscript(context.Background(), "transcripts/call.txt")
	require.NoError(t, err)
	assert.Equal(t, "Broker: Hi there", transcript)

	_, err = svc.DownloadTranscript(context.Background(), "transcripts/blank.txt")
	assert.Error(t, err)

	_, err = svc.DownloadTranscript(context.Background(), "transcripts/missing.txt")
	assert.Error(t, err)
}

func TestUploadPackage(t *testing.T) {
	objects := newFakeObjects()
	svc := s3service.NewWithClient(objects, nil, "bucket")

	pkg := &models.SubmissionPackage{Status: &models.SubmissionStatus{
		SubmissionID: "abc",
		BusinessName: "The Rusty Anchor",
		CurrentState: models.StateScheduled,
	}}

	key, err := svc.UploadPackage(context.Background(), pkg)
	require.NoError(t, err)
	assert.Equal(t, "submissions/abc/package.json", key)
	assert.Equal(t, "application/json", objects.contentType[key])

	var decoded models.SubmissionPackage
	require.NoError(t, json.Unmarshal(objects.objects[key], &decoded))
	assert.Equal(t, "The Rusty Anchor", decoded.Status.BusinessName)

	_, err = svc.UploadPackage(context.Background(), &models.SubmissionPackage{})
	assert.Error(t, err)

	objects.err = errors.New("access denied")
	_, err = svc.UploadPackage(context.Background(), pkg)
	assert.ErrorContains(t, err, "access denied")
}

func TestPresignedURLs(t *testing.T) {
	svc := s3service.NewWithClient(newFakeObjects(), fakePresigner{}, "bucket")

	up, err := svc.GeneratePresignedUploadURL(context.Background(), "transcripts/call.txt", "text/plain", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/transcripts/call.txt?put", up.URL)
	assert.Equal(t, "transcripts/call.txt", up.Key)

	down, err := svc.GeneratePresignedDownloadURL(context.Background(), "submissions/abc/package.json", 5)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/submissions/abc/package.json?get", down.URL)
	assert.False(t, down.ExpiresAt.IsZero())

	unsigned := s3service.NewWithClient(newFakeObjects(), nil, "bucket")
	_, err = unsigned.GeneratePresignedDownloadURL(context.Background(), "x", 5)
	assert.Error(t, err)
}
