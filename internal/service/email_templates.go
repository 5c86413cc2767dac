package service

import "fmt"

func welcomeEmailTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Set your first goal, log progress as you go,
and ask your coach for an analysis or an action plan whenever you get stuck.

Small steps every day add up.

Best,
The %s Team`, name, appName)

	return subject, body
}
