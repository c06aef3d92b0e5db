package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/xcmacro"
)

// parseDocument 解析 YAML/JSON 设置文件。
//
// 根节点必须是对象；值为标量时转换为字符串，嵌套对象与数组视为错误。
func parseDocument(path string, content []byte) (xcmacro.Table, error) {
	var raw any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return xcmacro.Table{}, nil
	}

	doc, err := rootObject(raw)
	if err != nil {
		return nil, err
	}
	for name, value := range doc {
		switch typed := value.(type) {
		case map[string]any, map[any]any, []any:
			return nil, fmt.Errorf("setting %q must be a scalar", name)
		case nil:
			doc[name] = ""
		case bool:
			// 构建设置中的布尔值约定为 YES/NO
			doc[name] = "NO"
			if typed {
				doc[name] = "YES"
			}
		}
	}

	return decodeTable(doc)
}

func rootObject(raw any) (map[string]any, error) {
	switch typed := raw.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprintf("%v", key)] = value
		}

		return out, nil
	}

	return nil, errors.New("settings root must be object")
}

// decodeTable 使用弱类型解码把标量统一转换为字符串。
func decodeTable(doc map[string]any) (xcmacro.Table, error) {
	table := make(xcmacro.Table, len(doc))
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &table,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, err
	}

	return table, nil
}
