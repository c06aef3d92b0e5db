package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/settings"
	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/xcmacro"
)

// maxRequestBytes POST /expand 请求体上限。
const maxRequestBytes = 1 << 20

// ExpandRequest POST /expand 请求体。
//
// Settings 覆盖在服务端配置的设置表之上，支持 $(inherited)。
type ExpandRequest struct {
	Settings map[string]string `json:"settings,omitempty"`
	Inputs   []string          `json:"inputs"`
}

// ExpandResponse POST /expand 响应体，Outputs 与 Inputs 一一对应。
type ExpandResponse struct {
	Outputs    []string     `json:"outputs"`
	Unresolved []Unresolved `json:"unresolved,omitempty"`
}

// Unresolved 一个按缺失策略处理的引用。
type Unresolved struct {
	Source string `json:"source"`
	Name   string `json:"name,omitempty"`
	Style  string `json:"style"`
	Reason string `json:"reason"`
	Input  int    `json:"input"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler 创建 HTTP 处理器。
//
// 路由：
//   - GET /health - 健康检查
//   - POST /expand - 展开模板
//
// budget 是单个请求的展开工作量上限 (见 [xcmacro.WithBudget])，平均分配给请求中的每个模板；
// 超出时返回 422。budget <= 0 表示不限制。
func NewHandler(base xcmacro.Table, maxDepth, budget int) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /expand", func(w http.ResponseWriter, r *http.Request) {
		var req ExpandRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			writeJSON(w, status, errorResponse{Error: fmt.Sprintf("decode request: %v", err)})

			return
		}

		resp, err := expandAll(base, maxDepth, budget, req)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})

			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	return mux
}

func expandAll(base xcmacro.Table, maxDepth, budget int, req ExpandRequest) (ExpandResponse, error) {
	table := base
	if len(req.Settings) > 0 {
		table = settings.Merge(base, req.Settings)
	}

	resp := ExpandResponse{Outputs: make([]string, len(req.Inputs))}
	current := 0
	if budget > 0 && len(req.Inputs) > 0 {
		budget = max(budget/len(req.Inputs), 1)
	}
	expander := xcmacro.New(table,
		xcmacro.WithMaxDepth(maxDepth),
		xcmacro.WithBudget(budget),
		xcmacro.WithMissingHook(func(ref xcmacro.Reference) {
			resp.Unresolved = append(resp.Unresolved, Unresolved{
				Source: ref.Source,
				Name:   ref.Name,
				Style:  ref.Style.String(),
				Reason: ref.Reason.String(),
				Input:  current,
			})
		}),
	)
	for i, input := range req.Inputs {
		current = i
		out, err := expander.TryExpand(input)
		if err != nil {
			slog.Warn("Rejected expand request", "input", i, "budget", budget, "error", err)

			return ExpandResponse{}, fmt.Errorf("input %d: %w", i, err)
		}
		resp.Outputs[i] = out
	}
	slog.Debug("Expanded request", "inputs", len(req.Inputs), "unresolved", len(resp.Unresolved))

	return resp, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Write response failed", "error", err)
	}
}
