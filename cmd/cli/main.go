package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/marcelsud/whatsapp-bridge-api/config"
	"github.com/marcelsud/whatsapp-bridge-api/whatsapp"
	"github.com/marcelsud/whatsapp-bridge-api/whatsapp/sqlite"
)

/*
CLI - consultas ao banco de mensagens da bridge, sem passar pela API

Execute com:
  go run cmd/cli/main.go contacts <query>
  go run cmd/cli/main.go chats [query]
  go run cmd/cli/main.go last <jid>
  go run cmd/cli/main.go context <message_id>

MESSAGES_DB_PATH vem do .env ou do ambiente, como na API.
*/

const usage = "usage: cli contacts <query> | chats [query] | last <jid> | context <message_id>"

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute returns the exit code so deferred closes run before os.Exit
func execute(args []string) int {
	if len(args) < 1 {
		fmt.Println(usage)
		return 1
	}
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return 1
	}
	ctx := context.Background()
	repo, err := sqlite.Open(ctx, cfg.MessagesDBPath)
	if err != nil {
		fmt.Println(err)
		return 1
	}
	defer repo.Close()

	// Só leitura: nenhum comando envia mensagens, então não há cliente da bridge
	s := whatsapp.NewService(repo, nil)
	out, err := run(ctx, s, args[0], args[1:])
	if err != nil {
		fmt.Println(err)
		return 1
	}
	fmt.Println(out)
	return 0
}

func run(ctx context.Context, s whatsapp.UseCase, command string, args []string) (string, error) {
	arg := func() (string, error) {
		if len(args) == 0 {
			return "", fmt.Errorf("%s: missing argument\n%s", command, usage)
		}
		return args[0], nil
	}

	switch command {
	case "contacts":
		query, err := arg()
		if err != nil {
			return "", err
		}
		contacts, err := s.SearchContacts(ctx, query)
		if err != nil {
			return "", err
		}
		return toJSON(contacts)
	case "chats":
		filter := whatsapp.ChatFilter{Limit: 20, IncludeLastMessage: true, SortBy: whatsapp.LastActive}
		if len(args) > 0 {
			filter.Query = args[0]
		}
		chats, err := s.ListChats(ctx, filter)
		if err != nil {
			return "", err
		}
		return toJSON(chats)
	case "last":
		jid, err := arg()
		if err != nil {
			return "", err
		}
		line, err := s.GetLastInteraction(ctx, jid)
		if err != nil {
			return "", err
		}
		if line == nil {
			return "no messages with " + jid, nil
		}
		return *line, nil
	case "context":
		id, err := arg()
		if err != nil {
			return "", err
		}
		mc, err := s.GetMessageContext(ctx, id, 5, 5)
		if err != nil {
			return "", err
		}
		return toJSON(mc)
	}
	return "", fmt.Errorf("unknown command %q\n%s", command, usage)
}

func toJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
