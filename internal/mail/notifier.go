package mail

import (
	"context"
	"fmt"
	"time"
	"unstablenet/internal/config"
	"unstablenet/internal/data"
	"unstablenet/internal/logger"
)

// SubscriberLister provides the recipient list for article notifications.
type SubscriberLister interface {
	ListSubscribers(ctx context.Context) ([]*data.Subscriber, error)
}

// SubscriberNotifier emails the newsletter list about new articles and
// welcomes new subscribers. Every send is best effort: failures are logged
// and never surfaced to the caller, since the triggering write has already
// been committed.
type SubscriberNotifier struct {
	sender  Sender
	subs    SubscriberLister
	baseURL string
	log     logger.Logger
}

// NewSubscriberNotifier creates a notifier that resolves recipients from the
// subscriber store and links back to articles under the given base URL.
func NewSubscriberNotifier(sender Sender, subs SubscriberLister, cfg config.ServerConfig, log logger.Logger) *SubscriberNotifier {
	return &SubscriberNotifier{
		sender:  sender,
		subs:    subs,
		baseURL: cfg.BaseURL,
		log:     log,
	}
}

// NotifyNewArticle emails every subscriber a link to the article. Individual
// delivery failures are logged and skipped; they never abort the run.
func (n *SubscriberNotifier) NotifyNewArticle(article *data.Article) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	subscribers, err := n.subs.ListSubscribers(ctx)
	if err != nil {
		n.log.Error(err, "Failed to load subscriber list for notification")
		return
	}

	subject := fmt.Sprintf("New on The (un)Stable Net: %s", article.Title)
	body := fmt.Sprintf("%s\r\n\r\n%s\r\n\r\nRead it here: %s/post/%s\r\n",
		article.Title, article.Subtitle, n.baseURL, article.Slug)

	for _, sub := range subscribers {
		if err := n.sender.Send(sub.Email, subject, body); err != nil {
			n.log.Error(err, fmt.Sprintf("Failed to notify %s", sub.Email))
		}
	}
}

// SendWelcome greets a new subscriber. Failures are logged only.
func (n *SubscriberNotifier) SendWelcome(email string) {
	body := fmt.Sprintf("Thanks for subscribing to The (un)Stable Net.\r\n\r\n"+
		"You'll get an email whenever a new article is published.\r\n\r\n%s\r\n", n.baseURL)
	if err := n.sender.Send(email, "Welcome to The (un)Stable Net", body); err != nil {
		n.log.Error(err, fmt.Sprintf("Failed to send welcome email to %s", email))
	}
}
