package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TagList 请求体里的 tags：数组、单个字符串或缺省都可以
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = TagList{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TagList{s}
		return nil
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if list == nil {
			list = []string{}
		}
		*t = list
		return nil
	}
	return fmt.Errorf("tags must be a string or an array of strings")
}

// Strings 永远返回非 nil 切片，保证序列化成 []
func (t TagList) Strings() []string {
	if t == nil {
		return []string{}
	}
	out := make([]string, len(t))
	copy(out, t)
	return out
}
