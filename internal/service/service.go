package service

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/skillsense/skillsense-ai/internal/config"
	"github.com/skillsense/skillsense-ai/internal/repository"
	"github.com/skillsense/skillsense-ai/internal/service/interview"
	"github.com/skillsense/skillsense-ai/internal/service/policy"
)

// Services 服务集合
type Services struct {
	// 业务服务
	Interview *interview.Service

	// 策略选择器
	Selector *policy.Selector

	// 配置
	Config *config.Config

	// Eino 组件（直接使用 eino 类型，无封装）
	ChatModel model.ChatModel
}

// NewServices 创建所有服务
func NewServices(repo *repository.Repositories, cfg *config.Config) (*Services, error) {
	ctx := context.Background()

	// 创建 ChatModel（知识画像的问题生成与概念抽取都经由它）
	chatModel, err := newChatModel(ctx, cfg)
	if err != nil {
		log.Printf("Warning: failed to create chat model: %v", err)
	}

	selector := policy.NewSelector(chatModel, &cfg.Interview)

	return &Services{
		Interview: interview.NewService(repo, selector, &cfg.Interview),
		Selector:  selector,
		Config:    cfg,
		ChatModel: chatModel,
	}, nil
}

// newChatModel 创建 ChatModel
func newChatModel(ctx context.Context, cfg *config.Config) (model.ChatModel, error) {
	aiCfg := cfg.AI

	var apiKey, baseURL, modelName string

	switch aiCfg.Provider {
	case "openai":
		apiKey = aiCfg.OpenAI.APIKey
		baseURL = aiCfg.OpenAI.BaseURL
		modelName = aiCfg.OpenAI.Model
	case "alibaba", "qwen", "dashscope":
		apiKey = aiCfg.Alibaba.AccessKeySecret
		baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
		modelName = aiCfg.Alibaba.Model
	case "deepseek":
		apiKey = aiCfg.DeepSeek.APIKey
		baseURL = aiCfg.DeepSeek.BaseURL
		modelName = aiCfg.DeepSeek.Model
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", aiCfg.Provider)
	}

	if apiKey == "" {
		return nil, fmt.Errorf("api_key is required for provider: %s", aiCfg.Provider)
	}

	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   modelName,
	})
}
