// Command hash-pin prints the bcrypt hash to put in AUTH_PIN_HASH.
//
//	hash-pin 4821
//	echo 4821 | hash-pin
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spm-engineering/billing-service/internal/auth"
	"github.com/spm-engineering/billing-service/internal/logging"
)

func main() {
	logger := logging.NewLogger("hash-pin")

	pin := ""
	if len(os.Args) > 1 {
		pin = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			logger.Fatal("no PIN given", logging.Fields{"error": err.Error()})
		}
		pin = line
	}

	pin = strings.TrimSpace(pin)
	if pin == "" {
		logger.Fatal("PIN must not be empty")
	}

	hash, err := auth.HashPIN(pin)
	if err != nil {
		logger.Fatal("failed to hash PIN", logging.Fields{"error": err.Error()})
	}
	fmt.Println(hash)
}
