package tui

import "github.com/charmbracelet/bubbles/key"

type globalKeys struct {
	Next, Prev, Tasks, Notes, Feedback, Quit key.Binding
}

var global = globalKeys{
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "próxima aba")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "aba anterior")),
	Tasks:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "tarefas")),
	Notes:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "anotações")),
	Feedback: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "feedback")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "sair")),
}

func (k globalKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Tasks, k.Notes, k.Feedback, k.Quit}
}

func (k globalKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Tasks, k.Notes, k.Feedback}, {k.Quit}}
}

var (
	addKey    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "adicionar"))
	toggleKey = key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "concluir"))
	deleteKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remover"))
	newKey    = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nova nota"))
	openKey   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "abrir"))
	editKey   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editar"))
	saveKey   = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "salvar"))
	backKey   = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "voltar"))
	focusKey  = key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "campo"))
	sendKey   = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "enviar"))
)
