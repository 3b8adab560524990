package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/daycoach-ai/daycoach/internal/coach"
	"github.com/daycoach-ai/daycoach/internal/conversation"
)

const (
	chatPrompt       = "you> "
	replayedMessages = 10
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the coach interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := newCoach(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return runChatREPL(cmd.Context(), svc, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

type chatChannel interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, text string) error
	WriteMeta(ctx context.Context, text string) error
}

type readlineChatChannel struct {
	rl  *readline.Instance
	out io.Writer
}

func newReadlineChatChannel(in io.Reader, out io.Writer) (*readlineChatChannel, error) {
	stdin, ok := in.(io.ReadCloser)
	if !ok {
		return nil, fmt.Errorf("stdin is not read-closer")
	}
	inFile, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(inFile.Fd())) {
		return nil, fmt.Errorf("stdin is not terminal")
	}
	outFile, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(outFile.Fd())) {
		return nil, fmt.Errorf("stdout is not terminal")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          chatPrompt,
		HistoryFile:     filepath.Join(os.TempDir(), ".daycoach_history"),
		HistoryLimit:    200,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           stdin,
		Stdout:          out,
		Stderr:          out,
	})
	if err != nil {
		return nil, err
	}
	return &readlineChatChannel{rl: rl, out: out}, nil
}

func (c *readlineChatChannel) Read(_ context.Context) (string, error) {
	line, err := c.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return "", io.EOF
		}
		return "", err
	}
	return line, nil
}

func (c *readlineChatChannel) Write(_ context.Context, text string) error {
	_, err := fmt.Fprintf(c.out, "coach> %s\n\n", text)
	return err
}

func (c *readlineChatChannel) WriteMeta(_ context.Context, text string) error {
	_, err := fmt.Fprintf(c.out, "%s\n", text)
	return err
}

func (c *readlineChatChannel) Close() error {
	return c.rl.Close()
}

type stdioChatChannel struct {
	in  *bufio.Reader
	out io.Writer
}

func newStdioChatChannel(in io.Reader, out io.Writer) *stdioChatChannel {
	return &stdioChatChannel{in: bufio.NewReader(in), out: out}
}

func (c *stdioChatChannel) Read(_ context.Context) (string, error) {
	if _, err := fmt.Fprint(c.out, chatPrompt); err != nil {
		return "", err
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if len(line) > 0 {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

func (c *stdioChatChannel) Write(_ context.Context, text string) error {
	_, err := fmt.Fprintf(c.out, "coach> %s\n\n", text)
	return err
}

func (c *stdioChatChannel) WriteMeta(_ context.Context, text string) error {
	_, err := fmt.Fprintf(c.out, "%s\n", text)
	return err
}

func runChatREPL(ctx context.Context, svc *coach.Coach, in io.Reader, out io.Writer) error {
	var channel chatChannel
	if rl, err := newReadlineChatChannel(in, out); err == nil {
		channel = rl
	} else {
		channel = newStdioChatChannel(in, out)
	}
	if closer, ok := any(channel).(io.Closer); ok {
		defer closer.Close()
	}
	return runChatLoop(ctx, svc, channel)
}

func runChatLoop(ctx context.Context, svc *coach.Coach, channel chatChannel) error {
	if err := channel.WriteMeta(ctx, "Interactive mode. Type /quit to stop, /read to mark messages read, /clear to reset the conversation."); err != nil {
		return err
	}

	// Replay the tail of the conversation so proactive messages sent while
	// the REPL was closed are visible.
	if msgs, err := svc.Messages(ctx); err == nil {
		start := len(msgs) - replayedMessages
		if start < 0 {
			start = 0
		}
		for _, msg := range msgs[start:] {
			prefix := "you"
			if msg.Sender == conversation.SenderCoach {
				prefix = "coach"
			}
			if err := channel.WriteMeta(ctx, fmt.Sprintf("%s> %s", prefix, msg.Content)); err != nil {
				return err
			}
		}
	}

	if unread, err := svc.UnreadCount(ctx); err == nil && unread > 0 {
		if err := channel.WriteMeta(ctx, fmt.Sprintf("%d unread message(s) from the coach. Type /read to mark them read.", unread)); err != nil {
			return err
		}
	}

	for {
		raw, err := channel.Read(ctx)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		input := strings.TrimSpace(raw)
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "/quit", "quit", "/exit", "exit":
			return nil
		case "/read":
			if err := svc.MarkAllRead(ctx); err != nil {
				return err
			}
			if err := channel.WriteMeta(ctx, "All messages marked read."); err != nil {
				return err
			}
			continue
		case "/clear":
			if err := svc.ClearConversation(ctx); err != nil {
				return err
			}
			if err := channel.WriteMeta(ctx, "Conversation cleared."); err != nil {
				return err
			}
			continue
		}

		reply, err := svc.AskDirect(ctx, input, "")
		if err != nil {
			if writeErr := channel.WriteMeta(ctx, fmt.Sprintf("error: %v", err)); writeErr != nil {
				return writeErr
			}
			continue
		}
		text := reply.Message
		if len(reply.Suggestions) > 0 {
			text += "\n  (" + strings.Join(reply.Suggestions, " | ") + ")"
		}
		if err := channel.Write(ctx, text); err != nil {
			return err
		}
	}
}
