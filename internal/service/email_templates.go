package service

import "fmt"

func programCompletedEmailTemplate(name, programTitle, programURL, appName string) (string, string) {
	subject := fmt.Sprintf("%q is complete", programTitle)
	body := fmt.Sprintf(`Hi %s,

Every goal in the mentorship program %q is now marked as completed. Congratulations!

Review the program: %s

Best,
The %s Team`, name, programTitle, programURL, appName)

	return subject, body
}
