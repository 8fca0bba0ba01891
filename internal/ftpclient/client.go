// Package ftpclient is a minimal FTP client for the NLM public server. It
// speaks only the verbs the mirror needs: CWD, MLSD and RETR, the latter two
// over extended-passive data connections.
//
// The MLSD listing is consumed as raw fact lines because the server's
// "unique" fact is the mirror's dedup key; general-purpose FTP libraries
// parse listings into name/size/time entries and drop it.
package ftpclient

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/textproto"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"medline_mirror/internal/logger"
)

const dataDialTimeout = 30 * time.Second

// Client is a connected FTP control session. It is not safe for concurrent
// use; one control connection cannot multiplex transfers.
type Client struct {
	host        string
	conn        *textproto.Conn
	rateLimiter *rate.Limiter
	ctx         context.Context
}

// Dial connects to addr (host:port) and reads the server greeting. NLM asks
// automated clients to pace themselves, so data-channel operations share a
// one-per-second rate limiter.
func Dial(addr string) (*Client, error) {
	conn, err := textproto.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	if _, _, err := conn.ReadResponse(220); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unexpected greeting from %s: %w", addr, err)
	}

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("invalid address %s: %w", addr, err)
	}

	return &Client{
		host:        host,
		conn:        conn,
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
		ctx:         context.Background(),
	}, nil
}

// Login authenticates the session and switches to binary mode.
func (c *Client) Login(user, password string) error {
	code, _, err := c.cmd(0, "USER %s", user)
	if err != nil {
		return fmt.Errorf("USER failed: %w", err)
	}
	if code == 331 {
		if _, _, err := c.cmd(230, "PASS %s", password); err != nil {
			return fmt.Errorf("PASS failed: %w", err)
		}
	} else if code != 230 {
		return fmt.Errorf("unexpected USER response code %d", code)
	}

	if _, _, err := c.cmd(200, "TYPE I"); err != nil {
		return fmt.Errorf("TYPE I failed: %w", err)
	}
	return nil
}

// ChangeDir changes the server's working directory.
func (c *Client) ChangeDir(dir string) error {
	_, _, err := c.cmd(250, "CWD %s", dir)
	return err
}

// ListLines returns the raw MLSD fact lines for dir.
func (c *Client) ListLines(dir string) ([]string, error) {
	if err := c.rateLimiter.Wait(c.ctx); err != nil {
		return nil, err
	}

	data, err := c.openDataConn()
	if err != nil {
		return nil, err
	}
	if _, _, err := c.cmd(1, "MLSD %s", dir); err != nil {
		data.Close()
		return nil, fmt.Errorf("MLSD %s failed: %w", dir, err)
	}

	var lines []string
	scanner := bufio.NewScanner(data)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	scanErr := scanner.Err()
	data.Close()

	if _, _, err := c.conn.ReadResponse(2); err != nil {
		return nil, fmt.Errorf("MLSD %s did not complete: %w", dir, err)
	}
	if scanErr != nil {
		return nil, fmt.Errorf("reading MLSD data for %s: %w", dir, scanErr)
	}
	logger.Debug.Printf("MLSD %s returned %d lines", dir, len(lines))
	return lines, nil
}

// Retrieve streams the remote file name into w.
func (c *Client) Retrieve(name string, w io.Writer) error {
	if err := c.rateLimiter.Wait(c.ctx); err != nil {
		return err
	}

	data, err := c.openDataConn()
	if err != nil {
		return err
	}
	if _, _, err := c.cmd(1, "RETR %s", name); err != nil {
		data.Close()
		return fmt.Errorf("RETR %s failed: %w", name, err)
	}

	_, copyErr := io.Copy(w, data)
	data.Close()

	if _, _, err := c.conn.ReadResponse(2); err != nil {
		return fmt.Errorf("RETR %s did not complete: %w", name, err)
	}
	if copyErr != nil {
		return fmt.Errorf("reading RETR data for %s: %w", name, copyErr)
	}
	return nil
}

// Quit ends the session.
func (c *Client) Quit() error {
	c.cmd(0, "QUIT")
	return c.conn.Close()
}

func (c *Client) cmd(expect int, format string, args ...any) (int, string, error) {
	if err := c.conn.PrintfLine(format, args...); err != nil {
		return 0, "", err
	}
	return c.conn.ReadResponse(expect)
}

// openDataConn enters extended passive mode and dials the port the server
// announces, e.g. "229 Entering Extended Passive Mode (|||41021|)".
func (c *Client) openDataConn() (net.Conn, error) {
	_, msg, err := c.cmd(229, "EPSV")
	if err != nil {
		return nil, fmt.Errorf("EPSV failed: %w", err)
	}

	port, err := parseEPSVPort(msg)
	if err != nil {
		return nil, err
	}

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(c.host, port), dataDialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to open data connection: %w", err)
	}
	return conn, nil
}

func parseEPSVPort(msg string) (string, error) {
	start := strings.Index(msg, "(|||")
	if start < 0 {
		return "", fmt.Errorf("unparsable EPSV response %q", msg)
	}
	rest := msg[start+len("(|||"):]
	end := strings.Index(rest, "|")
	if end <= 0 {
		return "", fmt.Errorf("unparsable EPSV response %q", msg)
	}
	return rest[:end], nil
}
