package tools

import (
	"context"

	logx "github.com/alraulpm-lang/checador/pkg/logger"
	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/tool"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"
)

func newToolLogHandler() *callbackHelper.ToolCallbackHandler {
	return &callbackHelper.ToolCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *tool.CallbackInput) context.Context {
			logx.Debug().Str("tool", info.Name).Str("args", input.ArgumentsInJSON).Msg("tool start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *tool.CallbackOutput) context.Context {
			logx.Debug().Str("tool", info.Name).Int("bytes", len(output.Response)).Msg("tool end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Info().Str("tool", info.Name).Err(err).Msg("tool failed")
			return ctx
		},
	}
}

// NewToolLogger returns a callbacks.Handler that logs tool runs.
func NewToolLogger() einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		Tool(newToolLogHandler()).
		Handler()
}
