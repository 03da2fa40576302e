// Command token mints an operator token signed with the service's JWT
// secret, for scripts and for operators without a login front end.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"storeconsole-backend/config"
	"storeconsole-backend/pkg/utils"
)

func main() {
	operator := flag.String("operator", "", "Operator id (token subject)")
	email := flag.String("email", "", "Operator email")
	role := flag.String("role", "manager", "Operator role; admin may manage every site")
	sites := flag.String("sites", "", "Comma separated site ids the operator may manage")
	expiry := flag.Duration("expiry", 24*time.Hour, "Token lifetime")
	flag.Parse()

	if *operator == "" {
		flag.Usage()
		os.Exit(1)
	}

	siteIDs, err := parseSites(*sites)
	if err != nil {
		log.Fatalf("sites: %v", err)
	}

	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	token, err := utils.GenerateJWT(*operator, *email, *role, siteIDs, *expiry)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}

func parseSites(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int64
	for _, part := range strings.Split(s, ",") {
		id, ok := utils.ParseID(strings.TrimSpace(part))
		if !ok || id == 0 {
			return nil, fmt.Errorf("invalid site id %q", part)
		}
		out = append(out, id)
	}
	return out, nil
}
