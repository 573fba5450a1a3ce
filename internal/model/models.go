package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// 所有模型的统一导入点
// 用于 AutoMigrate
var AllModels = []interface{}{
	&Student{},
	&Artifact{},
	&Interview{},
	&ConversationTurn{},
}

// StringList 有序字符串列表，数据库中以 JSON 文本存储
type StringList []string

// Value 实现 driver.Valuer
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 实现 sql.Scanner
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}

	if len(data) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(data, s)
}
