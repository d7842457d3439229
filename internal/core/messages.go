package core

import "fmt"

// User-visible strings. The bot speaks Persian.
const (
	FallbackUserName   = "دوست"
	ApologyMessage     = "ببخشید، یه مشکل کوچولو پیش اومده 😅"
	NoHistoryMessage   = "هیچ تاریخچه‌ای نداری"
	NewMessageLabel    = "پیام جدید:"
	ReplyInstruction   = "پاسخ کوتاه و طبیعی بده:"
	memoryUserLabel    = "کاربر:"
	memoryBotLabel     = "سایا:"
	ownerGreetingFmt   = "سلام %s! 😊 خوشحالم که برگشتی"
	defaultGreetingFmt = "سلام %s! من سایا هستم 🌸"
)

// FormatMemory renders an exchange as a user line followed by a bot line.
func FormatMemory(message, reply string) string {
	return fmt.Sprintf("%s %s\n%s %s", memoryUserLabel, message, memoryBotLabel, reply)
}

func OwnerGreeting(ownerName string) string {
	return fmt.Sprintf(ownerGreetingFmt, ownerName)
}

func Greeting(name string) string {
	return fmt.Sprintf(defaultGreetingFmt, name)
}
