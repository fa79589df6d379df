package backends

import (
	"context"
	"encoding/base64"
	"log"
	"strings"
	"sync"
	"time"

	asr "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/asr/v20190614"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	tcerrors "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/errors"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
)

const tencentASREndpoint = "asr.tencentcloudapi.com"

// TencentBackend transcribes through Tencent Cloud sentence recognition.
// The SDK client is created on first use and reused for the rest of the run.
type TencentBackend struct {
	name      string
	secretID  string
	secretKey string
	region    string
	engine    string

	mu     sync.Mutex
	client *asr.Client
}

func NewTencentBackend(name, secretID, secretKey, region, language string) *TencentBackend {
	engine := "16k_en"
	if strings.HasPrefix(language, "zh") {
		engine = "16k_zh"
	}
	return &TencentBackend{
		name:      name,
		secretID:  secretID,
		secretKey: secretKey,
		region:    region,
		engine:    engine,
	}
}

func (b *TencentBackend) Name() string { return b.name }

func (b *TencentBackend) asrClient() (*asr.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client != nil {
		return b.client, nil
	}

	credential := common.NewCredential(b.secretID, b.secretKey)
	cpf := profile.NewClientProfile()
	cpf.HttpProfile.Endpoint = tencentASREndpoint

	client, err := asr.NewClient(credential, b.region, cpf)
	if err != nil {
		return nil, invocationErr(FailureInit, "create tencent asr client: %v", err)
	}
	b.client = client
	return client, nil
}

func (b *TencentBackend) Transcribe(ctx context.Context, audio []float64, sampleRate int) (string, error) {
	client, err := b.asrClient()
	if err != nil {
		return "", err
	}

	wavBytes, err := EncodeWAV(audio, sampleRate)
	if err != nil {
		return "", invocationErr(FailureDecode, "encode audio: %v", err)
	}

	request := asr.NewSentenceRecognitionRequest()
	request.EngSerViceType = common.StringPtr(b.engine)
	request.SourceType = common.Uint64Ptr(1)
	request.VoiceFormat = common.StringPtr("wav")
	request.Data = common.StringPtr(base64.StdEncoding.EncodeToString(wavBytes))
	request.DataLen = common.Int64Ptr(int64(len(wavBytes)))

	start := time.Now()
	response, err := client.SentenceRecognitionWithContext(ctx, request)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if terr, ok := err.(*tcerrors.TencentCloudSDKError); ok {
			return "", invocationErr(FailureInference, "tencent asr error %s: %s", terr.GetCode(), terr.GetMessage())
		}
		return "", invocationErr(FailureInference, "tencent asr request: %v", err)
	}
	log.Printf("Backend %s inference call completed in %v", b.name, time.Since(start))

	if response.Response == nil || response.Response.Result == nil {
		return "", invocationErr(FailureDecode, "tencent asr returned empty result")
	}
	return *response.Response.Result, nil
}
