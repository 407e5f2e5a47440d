// uartconsole is a host-side console for a board running the SiFive UART
// driver. It opens the serial device facing the board, dumps everything the
// board transmits and offers a small command line for sending test data:
//
//	send <arg>...     send the arguments joined by single spaces
//	sendln <arg>...   same, with a trailing CRLF
//	sendhex <hh>...   send raw bytes given as hex pairs
//	quit              exit
//
// Arguments are split shell-style, so quoted strings keep their spaces.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/tarm/serial"
)

func main() {
	device := flag.String("device", "/dev/ttyUSB0", "serial device facing the board")
	baud := flag.Int("baud", 115200, "baud rate (must match the board's Configure call)")
	flag.Parse()

	port, err := serial.OpenPort(&serial.Config{
		Name:        *device,
		Baud:        *baud,
		ReadTimeout: 100 * time.Millisecond,
	})
	if err != nil {
		log.Fatalf("open %s: %v", *device, err)
	}
	defer port.Close()

	fmt.Printf("connected to %s at %d baud; type 'quit' to exit\n", *device, *baud)

	go dumpIncoming(port)

	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		if err := dispatch(port, in.Text()); err != nil {
			if err == errQuit {
				return
			}
			fmt.Println("error:", err)
		}
	}
}

var errQuit = fmt.Errorf("quit")

func dispatch(port *serial.Port, line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("parse command: %w", err)
	}
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "quit":
		return errQuit
	case "send":
		return sendText(port, args[1:], "")
	case "sendln":
		return sendText(port, args[1:], "\r\n")
	case "sendhex":
		data, err := hex.DecodeString(strings.Join(args[1:], ""))
		if err != nil {
			return fmt.Errorf("decode hex: %w", err)
		}
		return write(port, data)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func sendText(port *serial.Port, args []string, suffix string) error {
	return write(port, []byte(strings.Join(args, " ")+suffix))
}

func write(port *serial.Port, data []byte) error {
	if _, err := port.Write(data); err != nil {
		return fmt.Errorf("write %d bytes: %w", len(data), err)
	}
	fmt.Printf("-> %d bytes\n", len(data))
	return nil
}

// dumpIncoming hex-dumps everything the board sends. Reads time out every
// 100ms so the dump stays line-oriented rather than byte-oriented.
func dumpIncoming(port *serial.Port) {
	buf := make([]byte, 256)
	for {
		// tarm/serial reports a timed-out read as io.EOF with n==0, so errors
		// are not terminal here; just keep polling.
		n, _ := port.Read(buf)
		if n > 0 {
			fmt.Printf("<- %s", hex.Dump(buf[:n]))
		}
	}
}
