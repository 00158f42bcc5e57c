package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// asinPattern 商品URL内のASINにマッチするパターン。
// /dp/・/product/・/gp/product/ の直後の10文字の英数字コードを抽出する。
var asinPattern = regexp.MustCompile(`/(?:dp|gp/product|product)/([A-Za-z0-9]{10})(?:[/?#]|$)`)

// shortLinkHosts リダイレクト解決が必要な短縮URLのホスト
var shortLinkHosts = map[string]bool{
	"amzn.to":   true,
	"amzn.asia": true,
	"a.co":      true,
}

// amazonService ASIN解決サービスの実装
type amazonService struct {
	client *http.Client
	logger *logrus.Logger
}

// NewAmazonService ASIN解決サービスを作成
func NewAmazonService(logger *logrus.Logger) AmazonServiceInterface {
	return &amazonService{
		// リダイレクト追従はデフォルトの挙動に任せる。
		// 上流が遅い場合にリクエストを巻き込まないようタイムアウトを設定する。
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// ResolveASIN 商品URL（短縮URLを含む）からASINを解決する。
// 短縮URLの解決失敗は区別せず ErrASINNotFound として扱う。
func (s *amazonService) ResolveASIN(ctx context.Context, rawURL string) (string, error) {
	target := rawURL

	if isShortLink(rawURL) {
		resolved, err := s.followRedirect(ctx, rawURL)
		if err != nil {
			s.logger.WithError(err).WithField("url", rawURL).Warn("短縮URLの解決に失敗")
			return "", ErrASINNotFound
		}
		target = resolved
	}

	asin, ok := extractASIN(target)
	if !ok {
		return "", ErrASINNotFound
	}

	return asin, nil
}

// CoverImageURL ASINから表紙画像URLを組み立てる。
// 書籍APIはこの導出を行わない（クライアント側の責務）。
func (s *amazonService) CoverImageURL(asin string) string {
	return fmt.Sprintf("https://images-na.ssl-images-amazon.com/images/P/%s.09.LZZZZZZZ.jpg", asin)
}

// followRedirect HEADリクエストを1回発行してリダイレクト先の最終URLを返す
func (s *amazonService) followRedirect(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to resolve short url: %w", err)
	}
	defer resp.Body.Close()

	return resp.Request.URL.String(), nil
}

// isShortLink URLのホストが既知の短縮ドメインか判定する
func isShortLink(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	return shortLinkHosts[host]
}

// extractASIN URLのパスからASINを抽出する
func extractASIN(rawURL string) (string, bool) {
	matches := asinPattern.FindStringSubmatch(rawURL)
	if len(matches) < 2 {
		return "", false
	}
	return matches[1], true
}
