package s3

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name       string
		cdn        string
		endpoint   string
		disableSSL *bool
		region     string
		want       string
	}{
		{
			name: "cdn base wins",
			cdn:  "https://cdn.example.com",
			want: "https://cdn.example.com/photos/a/original.jpg",
		},
		{
			name:   "aws default",
			region: "eu-west-1",
			want:   "https://studio.s3.eu-west-1.amazonaws.com/photos/a/original.jpg",
		},
		{
			name: "aws empty region",
			want: "https://studio.s3.us-east-1.amazonaws.com/photos/a/original.jpg",
		},
		{
			name:       "minio without ssl",
			endpoint:   "http://localhost:9000",
			disableSSL: aws.Bool(true),
			want:       "http://localhost:9000/studio/photos/a/original.jpg",
		},
		{
			name:     "minio with ssl",
			endpoint: "https://minio.internal/",
			want:     "https://minio.internal/studio/photos/a/original.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := objectURL(tt.cdn, tt.endpoint, tt.disableSSL, tt.region, "studio", "photos/a/original.jpg")
			assert.Equal(t, tt.want, got)
		})
	}
}
