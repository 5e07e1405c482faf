// passwd genera el hash bcrypt para OPERATOR_PASSWORD_HASH / VIEWER_PASSWORD_HASH.
//
// Uso: go run ./cmd/passwd [-cost 12] < clave.txt
// Lee la clave de la primera línea de stdin para que no quede en el historial del shell.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "costo bcrypt")
	flag.Parse()

	fmt.Fprint(os.Stderr, "clave: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintf(os.Stderr, "leer clave: %v\n", err)
		os.Exit(1)
	}
	password := strings.TrimRight(line, "\r\n")
	if len(password) < 8 {
		fmt.Fprintln(os.Stderr, "la clave debe tener al menos 8 caracteres")
		os.Exit(1)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generar hash: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(hash))
}
