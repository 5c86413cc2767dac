package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseURL(t *testing.T) {
	assert.Equal(t,
		"https://avatars.s3.eu-central-1.amazonaws.com",
		baseURL(S3Config{Bucket: "avatars", Region: "eu-central-1"}),
	)
	assert.Equal(t,
		"http://localhost:9000/avatars",
		baseURL(S3Config{Bucket: "avatars", Endpoint: "http://localhost:9000/"}),
	)
}
