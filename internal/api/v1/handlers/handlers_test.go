package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"audio-minutes/internal/api/middleware"
	"audio-minutes/internal/api/v1/routes"
	"audio-minutes/internal/api/v1/services"
	"audio-minutes/internal/app/api"
	"audio-minutes/internal/app/converter"
	apperrors "audio-minutes/internal/app/errors"
	"audio-minutes/internal/app/metrics"
	"audio-minutes/internal/app/testutil"
)

type testEnv struct {
	router     *gin.Engine
	provider   *testutil.MockProvider
	transcoder *testutil.MockTranscoder
	uploadDir  string
	tempDir    string
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		provider:  testutil.NewMockProvider(),
		uploadDir: t.TempDir(),
		tempDir:   t.TempDir(),
	}
	env.transcoder = testutil.NewMockTranscoder(env.tempDir)

	m := metrics.New()
	conv := converter.NewConverter(env.transcoder, env.provider, m, zap.NewNop())

	env.router = gin.New()
	env.router.Use(middleware.RequestID())
	routes.RegisterRoutes(env.router, &routes.ServiceContainer{
		MinutesService: services.NewMinutesService(conv, env.uploadDir, zap.NewNop()),
		ProviderInfo:   env.provider.Info(),
		MetricsHandler: m.Handler(),
	})
	return env
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/summarize", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestMinutesHandler_Summarize(t *testing.T) {
	tests := []struct {
		name           string
		field          string
		filename       string
		setupMocks     func(*testutil.MockProvider)
		expectedStatus int
		wantTranscode  bool
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:     "success",
			field:    "file",
			filename: "meeting.wav",
			setupMocks: func(p *testutil.MockProvider) {
				p.ExpectSuccess(testutil.TestMinutes)
			},
			expectedStatus: http.StatusOK,
			wantTranscode:  true,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, testutil.TestMinutes.Summary, body["summary"])
				assert.Equal(t, testutil.TestMinutes.Transcription, body["original_text"])
			},
		},
		{
			name:           "unsupported extension",
			field:          "file",
			filename:       "notes.pdf",
			setupMocks:     func(p *testutil.MockProvider) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "bad_request", body["kind"])
				assert.Contains(t, body["detail"], "mp3, wav, m4a, ogg, flac, aac, wma, webm")
			},
		},
		{
			name:           "no extension",
			field:          "file",
			filename:       "recording",
			setupMocks:     func(p *testutil.MockProvider) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing file field",
			setupMocks:     func(p *testutil.MockProvider) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Contains(t, body["detail"], "file is required")
			},
		},
		{
			name:     "quota exceeded",
			field:    "file",
			filename: "meeting.M4A",
			setupMocks: func(p *testutil.MockProvider) {
				p.On("Upload", mock.Anything, mock.Anything).
					Return(nil, apperrors.QuotaExceeded(fmt.Errorf("Error 429, Status: RESOURCE_EXHAUSTED")))
			},
			expectedStatus: http.StatusTooManyRequests,
			wantTranscode:  true,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "quota_exceeded", body["kind"])
				assert.Contains(t, body["detail"], "tomorrow")
			},
		},
		{
			name:     "summary failure",
			field:    "file",
			filename: "meeting.mp3",
			setupMocks: func(p *testutil.MockProvider) {
				p.On("Upload", mock.Anything, mock.Anything).Return(&api.RemoteFile{Name: "files/1"}, nil)
				p.On("Summarize", mock.Anything, mock.Anything).
					Return(nil, apperrors.Summarization(fmt.Errorf("model overloaded"), "summary"))
			},
			expectedStatus: http.StatusInternalServerError,
			wantTranscode:  true,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "internal", body["kind"])
				assert.Contains(t, body["detail"], "model overloaded")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestRouter(t)
			tt.setupMocks(env.provider)

			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, multipartRequest(t, tt.field, tt.filename, testutil.FakeMP3))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.validateBody != nil {
				tt.validateBody(t, body)
			}

			if tt.wantTranscode {
				assert.Len(t, env.transcoder.Inputs(), 1)
			} else {
				assert.Empty(t, env.transcoder.Inputs())
				env.provider.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
			}
			assert.Empty(t, testutil.ListDir(t, env.uploadDir), "upload should be deleted")
			assert.Empty(t, testutil.ListDir(t, env.tempDir), "transcoded file should be deleted")
		})
	}
}

func TestSystemHandler(t *testing.T) {
	env := setupTestRouter(t)

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
		assert.NotEmpty(t, body["message"])
	})

	t.Run("root", func(t *testing.T) {
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["service"])
		assert.NotEmpty(t, body["version"])
		assert.Equal(t, "mock (mock-model)", body["powered_by"])
		endpoints := body["endpoints"].(map[string]interface{})
		assert.Contains(t, endpoints, "/summarize")
		assert.Contains(t, endpoints, "/health")
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "go_goroutines")
	})
}
