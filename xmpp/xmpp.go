package xmpp

import (
	"crypto/tls"
	"errors"
	"strings"

	"github.com/mattn/go-xmpp"
	log "github.com/sirupsen/logrus"
)

type (
	// Config for the notifier.
	Config struct {
		Host     string
		Jid      string
		Password string
		To       string
	}

	Xmpp struct {
		Config Config
	}
)

func serverName(jid string) string {
	return strings.Split(jid, "@")[1]
}

// Send delivers a chat message to the configured recipient, typically a
// voyage completion or failure notice.
func (x Xmpp) Send(message string) error {

	if len(x.Config.Jid) == 0 || len(x.Config.Password) == 0 || len(x.Config.To) == 0 {
		log.Debug("missing xmpp config")

		return errors.New("missing xmpp config")
	}

	if len(x.Config.Host) == 0 {
		x.Config.Host = serverName(x.Config.Jid)
	}

	xmpp.DefaultConfig = tls.Config{
		InsecureSkipVerify: true,
	}

	options := xmpp.Options{
		Host:          x.Config.Host,
		User:          x.Config.Jid,
		Password:      x.Config.Password,
		NoTLS:         true,
		StartTLS:      true,
		Debug:         false,
		Session:       false,
		Status:        "xa",
		StatusMessage: "Watching the fleet.",
	}

	talk, err := options.NewClient()
	if err != nil {
		log.WithError(err).Error("Error creating xmpp client")

		return err
	}

	_, err = talk.Send(xmpp.Chat{Remote: x.Config.To, Type: "chat", Text: message})
	return err
}
