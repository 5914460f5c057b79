package main

// @title           PDV Mesas API
// @version         1.0
// @description     API de mesas e vendas de mesa do PDV: mapa de mesas, abertura de conta, itens e fechamento com troco
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8084
// @BasePath  /api/v1
