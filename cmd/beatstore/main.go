package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rarebeats-player/internal/config"
	"github.com/rarebeats-player/internal/logger"
	"github.com/rarebeats-player/internal/service"
	"github.com/rarebeats-player/internal/storefront"
)

const usage = `用法: beatstore [flags] <command> [args]

commands:
  list                          列出商品（支持 -genre -mood -key -bpm-min -bpm-max -search）
  filters                       显示可用筛选项
  show <product-id>             显示商品与许可规格
  add <product-id> <variation-id>
                                加入购物车
  cart                          显示购物车
  remove <item-id>              删除购物车行
  clear                         清空购物车
  checkout                      创建结账并输出跳转地址
`

func main() {
	fs := flag.NewFlagSet("beatstore", flag.ExitOnError)
	apiURL := fs.String("api", "", "接口命名空间地址，默认取配置 storefront.public_url + namespace")
	nonce := fs.String("nonce", "", "防伪令牌，默认使用配置密钥签发")
	timeout := fs.Duration("timeout", 15*time.Second, "请求超时")
	filters := bindFilterFlags(fs)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()

	baseURL := strings.TrimSpace(*apiURL)
	if baseURL == "" {
		baseURL = cfg.Storefront.APIURL()
	}
	token := strings.TrimSpace(*nonce)
	if token == "" {
		issued, err := service.NewNonceService(cfg.Nonce).Issue()
		if err != nil {
			logger.Warnw("beatstore_issue_nonce_failed", "error", err)
		}
		token = issued
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := storefront.NewAPIClient(&http.Client{Timeout: *timeout}, baseURL, token)
	if err := run(ctx, client, os.Stdout, filters.state(), fs.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "beatstore: %v\n", err)
		os.Exit(1)
	}
}

// terminalNotifier 将提示输出到终端
type terminalNotifier struct {
	out io.Writer
}

func (n terminalNotifier) Success(message string) {
	fmt.Fprintf(n.out, "✔ %s\n", message)
}

func (n terminalNotifier) Error(message string) {
	fmt.Fprintf(n.out, "✖ %s\n", message)
}

func newSession(client *storefront.APIClient, out io.Writer) *storefront.Session {
	return storefront.NewSession(client, storefront.SessionOptions{
		Notifier: terminalNotifier{out: out},
		Navigator: storefront.NavigatorFunc(func(url string) error {
			_, err := fmt.Fprintf(out, "checkout: %s\n", url)
			return err
		}),
	})
}
