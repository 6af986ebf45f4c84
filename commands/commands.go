package commands

type CommandType string

const (
	RegisterCommand   CommandType = "register"
	UnregisterCommand CommandType = "unregister"
	ClassesCommand    CommandType = "classes"
	WhitelistCommand  CommandType = "whitelist"
	HelpCommand       CommandType = "help"
	StartCommand      CommandType = "start"
)
