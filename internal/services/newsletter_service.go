package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sagrop_cms/internal/models"
	"github.com/sagrop_cms/internal/repositories"
	"github.com/sagrop_cms/pkg/utils"
)

// BroadcastSubject 是文章通知邮件的主题
const BroadcastSubject = "New Article Published"

// Mailer 发送一封 HTML 邮件
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ArticleNotice 是群发通知中填入模板的文章信息
type ArticleNotice struct {
	Title    string
	Content  string
	ImageURL string
}

// BroadcastReport 记录一次群发的结果，两个列表都保持订阅顺序
type BroadcastReport struct {
	Sent   []string `json:"sent"`
	Failed []string `json:"failed"`
}

// NewsletterService 定义了邮件订阅与群发的接口
type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (*models.MailingListEntry, error)
	Broadcast(ctx context.Context, notice ArticleNotice) (*BroadcastReport, error)
}

type newsletterService struct {
	repo         repositories.MailingListRepository
	mailer       Mailer
	templatePath string
	concurrency  int
	logger       *slog.Logger
}

// NewNewsletterService 创建一个新的 newsletterService 实例。concurrency 限制同时进行的 SMTP 会话数。
func NewNewsletterService(repo repositories.MailingListRepository, mailer Mailer, templatePath string, concurrency int, logger *slog.Logger) NewsletterService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &newsletterService{
		repo:         repo,
		mailer:       mailer,
		templatePath: templatePath,
		concurrency:  concurrency,
		logger:       logger,
	}
}

func (s *newsletterService) Subscribe(ctx context.Context, email string) (*models.MailingListEntry, error) {
	const op = "newsletter.subscribe"

	email = utils.NormalizeEmail(email)
	if !utils.ValidateEmailFormat(email) {
		return nil, newError(KindValidation, op, "Invalid email address.", utils.ErrInvalidEmailFormat)
	}

	entry, err := s.repo.Add(ctx, email)
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		return nil, newError(KindConflict, op, "Email address already subscribed.", err)
	}
	if err != nil {
		s.logger.Error("Error adding email", "email", email, "error", err)
		return nil, newError(KindUpstream, op, "Error adding email address.", err)
	}
	s.logger.Info("email subscribed", "email", email)
	return entry, nil
}

// Broadcast 向全部订阅者发送文章通知。每个地址都会尝试发送，失败的地址汇总在报告与错误中。
func (s *newsletterService) Broadcast(ctx context.Context, notice ArticleNotice) (*BroadcastReport, error) {
	const op = "newsletter.broadcast"

	if strings.TrimSpace(notice.Title) == "" || strings.TrimSpace(notice.Content) == "" {
		return nil, newError(KindValidation, op, "Article title and content are required.", nil)
	}

	emails, err := s.repo.ListEmails(ctx)
	if err != nil {
		s.logger.Error("Error sending emails to subscribers", "error", err)
		return nil, newError(KindUpstream, op, "Error sending emails to subscribers.", err)
	}
	report := &BroadcastReport{Sent: []string{}, Failed: []string{}}
	if len(emails) == 0 {
		s.logger.Info("No email addresses found in the mailing list")
		return report, nil
	}

	tmpl, err := os.ReadFile(s.templatePath)
	if err != nil {
		s.logger.Error("Error reading email template", "path", s.templatePath, "error", err)
		return nil, newError(KindUpstream, op, "Error sending emails to subscribers.", err)
	}
	body := RenderNotice(string(tmpl), notice)

	errs := make([]error, len(emails))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, email := range emails {
		g.Go(func() error {
			if err := s.mailer.Send(ctx, email, BroadcastSubject, body); err != nil {
				s.logger.Error("Error sending email", "to", email, "error", err)
				errs[i] = fmt.Errorf("sending to %s: %w", email, err)
				return nil
			}
			s.logger.Info("Email sent successfully", "to", email)
			return nil
		})
	}
	_ = g.Wait()

	for i, email := range emails {
		if errs[i] != nil {
			report.Failed = append(report.Failed, email)
		} else {
			report.Sent = append(report.Sent, email)
		}
	}
	if len(report.Failed) > 0 {
		return report, newError(KindUpstream, op,
			fmt.Sprintf("Error sending email to %d of %d subscribers.", len(report.Failed), len(emails)),
			errors.Join(errs...))
	}
	s.logger.Info("Emails sent to all subscribers", "count", len(report.Sent))
	return report, nil
}

// RenderNotice 替换模板中第一处 {{articleTitle}}、{{articleContent}} 与 {{articleImageUrl}}
func RenderNotice(tmpl string, notice ArticleNotice) string {
	out := strings.Replace(tmpl, "{{articleTitle}}", notice.Title, 1)
	out = strings.Replace(out, "{{articleContent}}", notice.Content, 1)
	return strings.Replace(out, "{{articleImageUrl}}", notice.ImageURL, 1)
}
