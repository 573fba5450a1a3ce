package policy

import (
	"math/rand"

	einomodel "github.com/cloudwego/eino/components/model"

	"github.com/skillsense/skillsense-ai/internal/config"
	"github.com/skillsense/skillsense-ai/internal/service/types"
)

// 策略允许列表（封闭集合）
const (
	PolicyFixed      = "fixed"       // 固定概念清单
	PolicyKCTracking = "kc_tracking" // 自适应知识组件追踪
)

// AllowedPolicies 全部合法策略 id
var AllowedPolicies = []string{PolicyFixed, PolicyKCTracking}

// Selector 策略选择器：校验请求的策略 id，未指定时按配置或均匀随机选取
type Selector struct {
	chatModel     einomodel.ChatModel
	concepts      []string
	defaultPolicy string
	randIntn      func(n int) int // 可注入，测试用
}

// NewSelector 创建策略选择器
func NewSelector(chatModel einomodel.ChatModel, cfg *config.InterviewConfig) *Selector {
	return &Selector{
		chatModel:     chatModel,
		concepts:      append([]string{}, cfg.Concepts...),
		defaultPolicy: cfg.DefaultPolicy,
		randIntn:      rand.Intn,
	}
}

// Policies 返回允许列表副本
func (s *Selector) Policies() []string {
	return append([]string{}, AllowedPolicies...)
}

// Resolve 解析策略 id 并返回对应画像
// requested 为空时：配置了默认策略则使用之，否则从允许列表均匀随机
func (s *Selector) Resolve(requested string) (string, KnowledgeProfile, error) {
	id := requested
	if id == "" {
		id = s.defaultPolicy
	}
	if id == "" {
		id = AllowedPolicies[s.randIntn(len(AllowedPolicies))]
	}

	switch id {
	case PolicyFixed:
		return id, NewFixedProfile(s.chatModel), nil
	case PolicyKCTracking:
		return id, NewKCTrackingProfile(s.chatModel), nil
	default:
		return "", nil, types.ErrInvalidPolicy
	}
}

// NewState 为指定策略构建初始状态
func (s *Selector) NewState(policyID string) *State {
	return NewState(policyID, s.concepts)
}
