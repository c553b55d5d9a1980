package i18n

var messages = map[string]map[string]string{
	LangPortuguese: {
		"organization":          "Organização",
		"email":                 "E-mail",
		"email_placeholder":     "Digite seu e-mail",
		"password":              "Senha",
		"password_placeholder":  "Digite sua senha",
		"login_button":          "Entrar",
		"select_organization":   "Selecione a organização",
		"continue":              "Continuar",
		"back":                  "Voltar",
		"logout":                "Sair",
		"home":                  "Início",
		"contact":               "Contato",
		"loading":               "Carregando...",
		"theme":                 "Tema",
		"language":              "Idioma",
		"date":                  "Data",
		"image_type":            "Tipo de relatório",
		"download":              "Baixar imagem",
		"mail_daily_title":      "Relatório diário de e-mails",
		"image_not_found":       "Imagem não encontrada",
		"unauthorized_title":    "Acesso negado",
		"unauthorized_message":  "Você não tem permissão para acessar esta página.",
		"not_found_title":       "Página não encontrada",
		"not_found_message":     "A página que você procura não existe.",
		"welcome":               "Bem-vindo",
		"invalid_credentials":   "Usuário ou senha inválidos.",
		"organization_rejected": "Não foi possível entrar na organização selecionada.",
		"backend_unavailable":   "Serviço indisponível. Tente novamente mais tarde.",
		"session_expired":       "Sessão expirada. Entre novamente.",
		"fields_required":       "Preencha os campos corretamente.",
	},
	LangEnglish: {
		"organization":          "Organization",
		"email":                 "E-mail",
		"email_placeholder":     "Enter your e-mail",
		"password":              "Password",
		"password_placeholder":  "Enter your password",
		"login_button":          "Sign in",
		"select_organization":   "Select an organization",
		"continue":              "Continue",
		"back":                  "Back",
		"logout":                "Sign out",
		"home":                  "Home",
		"contact":               "Contact",
		"loading":               "Loading...",
		"theme":                 "Theme",
		"language":              "Language",
		"date":                  "Date",
		"image_type":            "Report type",
		"download":              "Download image",
		"mail_daily_title":      "Daily mail report",
		"image_not_found":       "Image not found",
		"unauthorized_title":    "Access denied",
		"unauthorized_message":  "You do not have permission to access this page.",
		"not_found_title":       "Page not found",
		"not_found_message":     "The page you are looking for does not exist.",
		"welcome":               "Welcome",
		"invalid_credentials":   "Invalid username or password.",
		"organization_rejected": "Could not sign in to the selected organization.",
		"backend_unavailable":   "Service unavailable. Please try again later.",
		"session_expired":       "Session expired. Please sign in again.",
		"fields_required":       "Please fill in the fields correctly.",
	},
}
